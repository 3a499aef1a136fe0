package seed

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	users := []User{
		{
			FirstName: "Dana",
			LastName:  "Whitfield",
			Email:     "dana.whitfield@example.com",
			Password:  "password123",
		}, {
			FirstName: "Marcus",
			LastName:  "Reyes",
			Email:     "marcus.reyes@example.com",
			Password:  "password123",
		},
	}

	for i := range users {
		var existing User
		if err := db.First(&existing, "email = ?", users[i].Email).Error; err == nil {
			log.Info("User already exists", "email", users[i].Email)
			users[i] = existing
			continue
		}
		log.Info("Seeding user", "email", users[i].Email)
		if err := db.Create(&users[i]).Error; err != nil {
			log.Er("failed to create user", err, "email", users[i].Email)
		}
	}

	sampleCase := Case{
		OwnerID:           users[0].ID,
		IssueDescription:  "My landlord has refused to return my security deposit for over 60 days.",
		PartiesInvolved:   "Myself and Hillcrest Property Management",
		IncidentDate:      "2026-06-15",
		ZipCode:           "92101",
		IssueImpact:       StringList{"Financial loss", "Time loss"},
		DesiredResolution: "Full return of the deposit plus statutory penalties.",
		Documents:         StringList{},
	}

	var existing Case
	if err := db.First(&existing, "owner_id = ?", sampleCase.OwnerID).Error; err == nil {
		log.Info("Sample case already exists", "ownerID", sampleCase.OwnerID)
		return nil
	}
	if err := db.Create(&sampleCase).Error; err != nil {
		log.Er("failed to create sample case", err)
	}

	return nil
}
