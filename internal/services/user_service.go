package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tap-game/internal/models"
	"tap-game/internal/repository"
)

// UserService is the read side of the user ledger the UI consumes
type UserService struct {
	store repository.Store
}

// Profile is a user snapshot with stats and the effective hourly rate
// (stored rate plus upgrade hourly bonuses).
type Profile struct {
	User       models.User      `json:"user"`
	Stats      models.GameStats `json:"stats"`
	HourlyRate int              `json:"hourlyRate"`
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// GetProfile retrieves a user together with their gameplay stats
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats, err := s.store.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	upgrades, err := s.store.UserUpgrades(ctx, userID)
	if err != nil {
		return nil, err
	}

	hourly := user.HourlyRate
	for _, u := range upgrades {
		hourly += u.HourlyBonus
	}

	return &Profile{
		User:       *user,
		Stats:      *stats,
		HourlyRate: hourly,
	}, nil
}

// GetUpgrades retrieves the user's purchased upgrades
func (s *UserService) GetUpgrades(ctx context.Context, userID uint) ([]models.Upgrade, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.store.UserUpgrades(ctx, userID)
}

// ListUsers retrieves all users (admin view)
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}
