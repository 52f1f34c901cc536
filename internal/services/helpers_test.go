package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tap-game/internal/models"
	"tap-game/internal/repository"
)

// setupTestDB opens a per-test named in-memory sqlite database. The name
// keeps tests isolated while cache=shared keeps the schema visible across
// pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Upgrade{},
		&models.GameStats{},
		&models.GameSettings{},
		&models.WheelSpin{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

// setupGame builds a store and a primed settings service over a fresh DB
func setupGame(t *testing.T) (*gorm.DB, *repository.Repository, *SettingsService) {
	t.Helper()

	db := setupTestDB(t)
	store := repository.New(db)
	settings := NewSettingsService(store)

	err := settings.EnsureDefaults(context.Background(), models.GameSettings{
		BaseTapPoints:        125,
		RegenAmount:          3,
		RegenIntervalSeconds: 3,
	})
	if err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	return db, store, settings
}

func createUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
