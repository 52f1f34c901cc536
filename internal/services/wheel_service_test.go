package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tap-game/internal/models"
)

// fixedRand returns the given samples in order, repeating the last one
func fixedRand(samples ...float64) func() float64 {
	i := 0
	return func() float64 {
		s := samples[i]
		if i < len(samples)-1 {
			i++
		}
		return s
	}
}

func setWheelRewards(t *testing.T, settings *SettingsService, rewards models.WheelRewardList) {
	t.Helper()
	if _, err := settings.Update(context.Background(), SettingsPatch{WheelRewards: &rewards}); err != nil {
		t.Fatalf("failed to set wheel rewards: %v", err)
	}
}

func TestPickRewardCumulativeWalk(t *testing.T) {
	rewards := models.WheelRewardList{
		{Type: "coins", Probability: 0.3},
		{Type: "energy", Probability: 0.3},
		{Type: "character", Probability: 0.4},
	}

	reward, matched := pickReward(rewards, 0.95)
	if !matched {
		t.Error("expected a normal match at 0.95")
	}
	if reward.Type != "character" {
		t.Errorf("expected third reward at 0.95, got %q", reward.Type)
	}

	// Exact boundary selects the entry that completes the cumulative sum
	reward, matched = pickReward(rewards, 0.3)
	if !matched || reward.Type != "coins" {
		t.Errorf("expected first reward at 0.3, got %q (matched=%v)", reward.Type, matched)
	}

	// Probabilities summing below 1.0 fall back to the first entry
	short := models.WheelRewardList{
		{Type: "coins", Probability: 0.3},
		{Type: "energy", Probability: 0.3},
		{Type: "character", Probability: 0.3},
	}
	reward, matched = pickReward(short, 0.95)
	if matched {
		t.Error("expected fallback at 0.95 on a 0.9-sum table")
	}
	if reward.Type != "coins" {
		t.Errorf("expected fallback to first reward, got %q", reward.Type)
	}
}

func TestSpinAppliesCoinsReward(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewWheelService(store, settings)
	service.rand = fixedRand(0.0)
	ctx := context.Background()

	setWheelRewards(t, settings, models.WheelRewardList{
		{Type: "coins", Min: 200, Max: 200, Probability: 1.0},
	})

	user := createUser(t, db, models.User{
		Username: "dave", Points: 1000, Energy: 50, MaxEnergy: 100,
	})

	result, err := service.Spin(ctx, user.ID)
	if err != nil {
		t.Fatalf("Spin failed: %v", err)
	}

	if result.Reward != "coins" || result.Amount != 200 {
		t.Errorf("expected coins:200, got %s:%d", result.Reward, result.Amount)
	}

	var after models.User
	db.First(&after, user.ID)
	if after.Points != 1200 {
		t.Errorf("expected points 1200, got %d", after.Points)
	}

	stats, err := store.GetStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.LastWheelSpin == nil {
		t.Fatal("expected lastWheelSpin to be recorded")
	}

	spins, err := store.SpinHistory(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("failed to load spin history: %v", err)
	}
	if len(spins) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(spins))
	}
	if spins[0].Descriptor != "coins:200" {
		t.Errorf("expected descriptor coins:200, got %q", spins[0].Descriptor)
	}
}

func TestSpinClampsEnergyReward(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewWheelService(store, settings)
	service.rand = fixedRand(0.0)
	ctx := context.Background()

	setWheelRewards(t, settings, models.WheelRewardList{
		{Type: "energy", Min: 9999, Max: 9999, Probability: 1.0},
	})

	user := createUser(t, db, models.User{
		Username: "erin", Energy: 50, MaxEnergy: 100,
	})

	result, err := service.Spin(ctx, user.ID)
	if err != nil {
		t.Fatalf("Spin failed: %v", err)
	}
	if result.Amount != 9999 {
		t.Errorf("expected drawn amount 9999, got %d", result.Amount)
	}

	var after models.User
	db.First(&after, user.ID)
	if after.Energy != 100 {
		t.Errorf("expected energy clamped to 100, got %d", after.Energy)
	}
}

func TestSpinCharacterRewardNotAutoApplied(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewWheelService(store, settings)
	service.rand = fixedRand(0.0)
	ctx := context.Background()

	setWheelRewards(t, settings, models.WheelRewardList{
		{Type: "character", Min: 0, Max: 0, Probability: 1.0},
	})

	user := createUser(t, db, models.User{
		Username: "finn", Points: 500, Energy: 20, MaxEnergy: 100,
	})

	result, err := service.Spin(ctx, user.ID)
	if err != nil {
		t.Fatalf("Spin failed: %v", err)
	}
	if result.Reward != "character" || result.Amount != 0 {
		t.Errorf("expected character:0, got %s:%d", result.Reward, result.Amount)
	}

	var after models.User
	db.First(&after, user.ID)
	if after.Points != 500 || after.Energy != 20 {
		t.Errorf("character reward mutated numeric fields: points=%d energy=%d", after.Points, after.Energy)
	}

	spins, _ := store.SpinHistory(ctx, user.ID, 10)
	if len(spins) != 1 || spins[0].Descriptor != "character:0" {
		t.Errorf("expected character:0 audit record, got %v", spins)
	}
}

func TestSpinCooldown(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewWheelService(store, settings)
	service.rand = fixedRand(0.0)
	ctx := context.Background()

	setWheelRewards(t, settings, models.WheelRewardList{
		{Type: "coins", Min: 100, Max: 100, Probability: 1.0},
	})

	user := createUser(t, db, models.User{
		Username: "gwen", Energy: 10, MaxEnergy: 100,
	})

	if _, err := service.Spin(ctx, user.ID); err != nil {
		t.Fatalf("first spin failed: %v", err)
	}

	stats, _ := store.GetStats(ctx, user.ID)
	firstSpinAt := *stats.LastWheelSpin
	var afterFirst models.User
	db.First(&afterFirst, user.ID)

	_, err := service.Spin(ctx, user.ID)
	if !errors.Is(err, ErrSpinCooldown) {
		t.Fatalf("expected ErrSpinCooldown, got %v", err)
	}

	// Rejected spin must not mutate points, energy, or the timestamp
	var afterSecond models.User
	db.First(&afterSecond, user.ID)
	if afterSecond.Points != afterFirst.Points || afterSecond.Energy != afterFirst.Energy {
		t.Error("rejected spin mutated user state")
	}
	stats, _ = store.GetStats(ctx, user.ID)
	if !stats.LastWheelSpin.Equal(firstSpinAt) {
		t.Error("rejected spin moved lastWheelSpin")
	}

	spins, _ := store.SpinHistory(ctx, user.ID, 10)
	if len(spins) != 1 {
		t.Errorf("rejected spin wrote an audit record: %d records", len(spins))
	}
}

func TestCanSpinAfterWindowElapses(t *testing.T) {
	db, store, settings := setupGame(t)
	service := NewWheelService(store, settings)
	service.rand = fixedRand(0.0)
	ctx := context.Background()

	user := createUser(t, db, models.User{
		Username: "hank", Energy: 10, MaxEnergy: 100,
	})

	// Never spun
	ok, err := service.CanSpin(ctx, user.ID)
	if err != nil {
		t.Fatalf("CanSpin failed: %v", err)
	}
	if !ok {
		t.Error("expected CanSpin true for a user with no prior spin")
	}

	if _, err := service.Spin(ctx, user.ID); err != nil {
		t.Fatalf("Spin failed: %v", err)
	}

	ok, _ = service.CanSpin(ctx, user.ID)
	if ok {
		t.Error("expected CanSpin false inside the cooldown window")
	}

	// Move the clock 25 hours forward
	service.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	ok, _ = service.CanSpin(ctx, user.ID)
	if !ok {
		t.Error("expected CanSpin true after 24h elapsed")
	}
}

func TestSpinUnknownUser(t *testing.T) {
	_, store, settings := setupGame(t)
	service := NewWheelService(store, settings)

	_, err := service.Spin(context.Background(), 424242)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
