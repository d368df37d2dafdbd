package database

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ricemill-backend/internal/config"
	"ricemill-backend/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	if err := Migrate(DB); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	logrus.Info("database connected, migration complete")
}

// Migrate runs AutoMigrate for all tables. Split out so the test harness can
// migrate a throwaway database without going through Init.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ProducerGroup{},
		&models.Farmer{},
		&models.Variety{},
		&models.Stock{},
		&models.MillingBatch{},
		&models.MillingOutputPackage{},
		&models.AuditLog{},
	)
}
