package initialize

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Migrating schema")

	if err := db.AutoMigrate(&User{}, &Case{}); err != nil {
		return log.Err("failed to migrate schema", err)
	}

	log.Info("Table initialization complete")
	return nil
}
