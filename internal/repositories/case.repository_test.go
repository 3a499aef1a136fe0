package repositories

import (
	"context"
	"server/internal/database"
	"server/internal/errs"
	. "server/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&User{}, &Case{}))

	// Cache clients stay nil; the cache layer degrades to passthrough.
	return database.DB{SQL: gdb}
}

func newCase(ownerID, description string, createdAt time.Time) *Case {
	return &Case{
		BaseUUIDModel:     BaseUUIDModel{CreatedAt: createdAt},
		OwnerID:           ownerID,
		IssueDescription:  description,
		PartiesInvolved:   "Myself and the other side",
		IncidentDate:      "2026-06-15",
		ZipCode:           "92101",
		IssueImpact:       StringList{"Financial loss", "Time loss"},
		DesiredResolution: "Make it right, with interest.",
		Documents:         StringList{},
	}
}

func TestCaseRepository_CreateAndGet(t *testing.T) {
	repo := NewCase(newTestDB(t))
	ctx := context.Background()

	created := newCase("user-a", "Security deposit withheld past the deadline.", time.Time{})
	require.NoError(t, repo.Create(ctx, created))
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero(), "creation timestamp is server-assigned")

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "92101", fetched.ZipCode)
	assert.Equal(t, StringList{"Financial loss", "Time loss"}, fetched.IssueImpact,
		"tag order survives the round trip")
	assert.Equal(t, "user-a", fetched.OwnerID)
}

func TestCaseRepository_CreateRejectsMissingRequiredFields(t *testing.T) {
	repo := NewCase(newTestDB(t))
	ctx := context.Background()

	err := repo.Create(ctx, &Case{OwnerID: "user-a"})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	for _, field := range []string{"issueDescription", "partiesInvolved", "incidentDate", "zipCode", "desiredResolution"} {
		assert.Contains(t, e.Fields, field)
	}

	cases, err := repo.GetAllForUser(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, cases, "an incomplete case never reaches the database")
}

func TestCaseRepository_CreateRejectsBlankField(t *testing.T) {
	repo := NewCase(newTestDB(t))
	ctx := context.Background()

	c := newCase("user-a", "Security deposit withheld past the deadline.", time.Time{})
	c.ZipCode = "   "

	err := repo.Create(ctx, c)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Len(t, e.Fields, 1)
	assert.Contains(t, e.Fields, "zipCode")
}

func TestCaseRepository_GetByID_NotFound(t *testing.T) {
	repo := NewCase(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "00000000-0000-7000-8000-000000000000")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = repo.GetByID(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestCaseRepository_ListScopedToOwner(t *testing.T) {
	repo := NewCase(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newCase("user-a", "Case A one, ten characters plus.", base)))
	require.NoError(t, repo.Create(ctx, newCase("user-a", "Case A two, ten characters plus.", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newCase("user-b", "Case B one, ten characters plus.", base.Add(2*time.Hour))))

	casesA, err := repo.GetAllForUser(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, casesA, 2)
	for _, c := range casesA {
		assert.Equal(t, "user-a", c.OwnerID)
	}
	assert.True(t, casesA[0].CreatedAt.After(casesA[1].CreatedAt), "newest first")

	casesB, err := repo.GetAllForUser(ctx, "user-b")
	require.NoError(t, err)
	require.Len(t, casesB, 1)

	casesC, err := repo.GetAllForUser(ctx, "user-c")
	require.NoError(t, err)
	assert.Empty(t, casesC)
}

func TestCaseRepository_UpdatePersistsAnalysis(t *testing.T) {
	repo := NewCase(newTestDB(t))
	ctx := context.Background()

	created := newCase("user-a", "Security deposit withheld past the deadline.", time.Time{})
	require.NoError(t, repo.Create(ctx, created))

	classification := "Landlord-tenant dispute"
	created.CaseClassification = &classification
	created.RelevantLaws = StringList{"Cal. Civ. Code 1950.5"}
	require.NoError(t, repo.Update(ctx, created))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.CaseClassification)
	assert.Equal(t, classification, *fetched.CaseClassification)
	assert.Equal(t, StringList{"Cal. Civ. Code 1950.5"}, fetched.RelevantLaws)
}

func TestCaseRepository_DeleteScopedToOwner(t *testing.T) {
	repo := NewCase(newTestDB(t))
	ctx := context.Background()

	created := newCase("user-a", "Security deposit withheld past the deadline.", time.Time{})
	require.NoError(t, repo.Create(ctx, created))

	err := repo.Delete(ctx, created.ID, "user-b")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = repo.GetByID(ctx, created.ID)
	assert.NoError(t, err, "case survives a non-owner delete attempt")

	require.NoError(t, repo.Delete(ctx, created.ID, "user-a"))

	_, err = repo.GetByID(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUser(newTestDB(t))
	ctx := context.Background()

	first := &User{FirstName: "Dana", LastName: "Whitfield", Email: "dana@example.com", Password: "password123"}
	require.NoError(t, repo.Create(ctx, first))

	second := &User{FirstName: "Other", LastName: "Person", Email: "dana@example.com", Password: "password456"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo := NewUser(newTestDB(t))
	ctx := context.Background()

	user := &User{FirstName: "Dana", LastName: "Whitfield", Email: "dana@example.com", Password: "password123"}
	require.NoError(t, repo.Create(ctx, user))

	fetched, err := repo.GetByEmail(ctx, "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
	assert.True(t, fetched.CheckPassword("password123"), "hash is stored, not plaintext")

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
