package services

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"tap-game/internal/repository"
)

// TapService converts tap requests into points awards
type TapService struct {
	store    repository.Store
	settings *SettingsService

	// mu serializes the read-check-write sequence so concurrent taps for
	// the same user (double-clicks) cannot double-spend energy.
	mu sync.Mutex
}

// TapResult is the outcome of one successful tap
type TapResult struct {
	PointsEarned int64 `json:"pointsEarned"`
	NewPoints    int64 `json:"newPoints"`
	NewEnergy    int   `json:"newEnergy"`
}

// NewTapService creates a new TapService
func NewTapService(store repository.Store, settings *SettingsService) *TapService {
	return &TapService{store: store, settings: settings}
}

// Tap awards points for one tap and consumes one energy. Energy never goes
// negative and points only ever increase through this path; at zero energy
// nothing is mutated.
func (s *TapService) Tap(ctx context.Context, userID uint) (*TapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Energy <= 0 {
		return nil, ErrNoEnergy
	}

	upgrades, err := s.store.UserUpgrades(ctx, userID)
	if err != nil {
		return nil, err
	}

	tapBonus := 0
	for _, u := range upgrades {
		tapBonus += u.TapBonus
	}

	pointsEarned := int64(s.settings.Get().BaseTapPoints + tapBonus)

	updated, err := s.store.ApplyTap(ctx, user.ID, pointsEarned)
	if err != nil {
		// The user existed moments ago, so a vanished row can only mean
		// the energy guard fired.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEnergy
		}
		return nil, err
	}

	return &TapResult{
		PointsEarned: pointsEarned,
		NewPoints:    updated.Points,
		NewEnergy:    updated.Energy,
	}, nil
}
