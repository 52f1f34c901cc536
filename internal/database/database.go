package database

import (
	"fmt"
	"log"

	"tap-game/internal/config"
	"tap-game/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes the database connection. PostgreSQL is the production
// backend; the sqlite driver covers local development and tests.
func Connect(cfg *config.Config) error {
	var err error

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	switch cfg.Database.Driver {
	case "sqlite":
		DB, err = gorm.Open(sqlite.Open(cfg.Database.SQLite), gormCfg)
	default:
		DB, err = gorm.Open(postgres.Open(cfg.GetDSN()), gormCfg)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	gameModels := []interface{}{
		&models.User{},
		&models.Upgrade{},
		&models.GameStats{},
		&models.GameSettings{},
		&models.WheelSpin{},
	}

	for _, model := range gameModels {
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("Warning: migration issue for %T: %v", model, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
