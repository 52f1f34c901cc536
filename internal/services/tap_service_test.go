package services

import (
	"context"
	"errors"
	"testing"

	"tap-game/internal/models"
)

func TestTapAwardsBasePoints(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewTapService(store, settings)
	ctx := context.Background()

	user := createUser(t, db, models.User{
		Username: "alice", Points: 2140, Energy: 1, MaxEnergy: 100,
	})

	result, err := service.Tap(ctx, user.ID)
	if err != nil {
		t.Fatalf("Tap failed: %v", err)
	}

	if result.PointsEarned != 125 {
		t.Errorf("expected 125 points earned, got %d", result.PointsEarned)
	}
	if result.NewPoints != 2265 {
		t.Errorf("expected 2265 points, got %d", result.NewPoints)
	}
	if result.NewEnergy != 0 {
		t.Errorf("expected 0 energy, got %d", result.NewEnergy)
	}

	stats, err := store.GetStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.TotalTaps != 1 {
		t.Errorf("expected 1 total tap, got %d", stats.TotalTaps)
	}
	if stats.TotalEarned != 125 {
		t.Errorf("expected 125 total earned, got %d", stats.TotalEarned)
	}

	// Second tap at zero energy must fail without mutating anything
	_, err = service.Tap(ctx, user.ID)
	if !errors.Is(err, ErrNoEnergy) {
		t.Fatalf("expected ErrNoEnergy, got %v", err)
	}

	var after models.User
	if err := db.First(&after, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if after.Points != 2265 {
		t.Errorf("rejected tap mutated points: %d", after.Points)
	}
	if after.Energy != 0 {
		t.Errorf("rejected tap mutated energy: %d", after.Energy)
	}

	stats, _ = store.GetStats(ctx, user.ID)
	if stats.TotalTaps != 1 || stats.TotalEarned != 125 {
		t.Errorf("rejected tap mutated stats: taps=%d earned=%d", stats.TotalTaps, stats.TotalEarned)
	}
}

func TestTapSumsUpgradeBonuses(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewTapService(store, settings)
	ctx := context.Background()

	user := createUser(t, db, models.User{
		Username: "bob", Energy: 10, MaxEnergy: 10,
	})

	db.Create(&models.Upgrade{UserID: user.ID, Name: "Golden Finger", Level: 2, MaxLevel: 5, TapBonus: 10})
	db.Create(&models.Upgrade{UserID: user.ID, Name: "Turbo Glove", Level: 1, MaxLevel: 3, TapBonus: 15, HourlyBonus: 50})

	result, err := service.Tap(ctx, user.ID)
	if err != nil {
		t.Fatalf("Tap failed: %v", err)
	}

	if result.PointsEarned != 150 {
		t.Errorf("expected 125+10+15=150 points earned, got %d", result.PointsEarned)
	}
}

func TestTapUnknownUser(t *testing.T) {
	_, store, settings := setupGame(t)
	service := NewTapService(store, settings)

	_, err := service.Tap(context.Background(), 999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTapEnergyStaysInBounds(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewTapService(store, settings)
	ctx := context.Background()

	user := createUser(t, db, models.User{
		Username: "carol", Energy: 3, MaxEnergy: 3,
	})

	var lastPoints int64
	for i := 0; i < 5; i++ {
		result, err := service.Tap(ctx, user.ID)
		if i < 3 {
			if err != nil {
				t.Fatalf("tap %d failed: %v", i, err)
			}
			if result.NewEnergy < 0 || result.NewEnergy > user.MaxEnergy {
				t.Errorf("tap %d: energy %d out of bounds", i, result.NewEnergy)
			}
			if result.NewPoints < lastPoints {
				t.Errorf("tap %d: points decreased from %d to %d", i, lastPoints, result.NewPoints)
			}
			lastPoints = result.NewPoints
		} else if !errors.Is(err, ErrNoEnergy) {
			t.Errorf("tap %d: expected ErrNoEnergy, got %v", i, err)
		}
	}

	var after models.User
	db.First(&after, user.ID)
	if after.Energy != 0 {
		t.Errorf("expected energy drained to 0, got %d", after.Energy)
	}
	if after.Points != 3*125 {
		t.Errorf("expected 375 points, got %d", after.Points)
	}
}
