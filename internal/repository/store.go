package repository

import (
	"context"

	"tap-game/internal/models"
)

// Store is the storage contract the game core operates through. User
// mutations are expressed as column updates, never as write-backs of a
// client-held row, so a regeneration tick landing between a caller's read
// and its write is never overwritten.
// Lookups report a missing row as gorm.ErrRecordNotFound.
type Store interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UserUpgrades(ctx context.Context, userID uint) ([]models.Upgrade, error)

	GetStats(ctx context.Context, userID uint) (*models.GameStats, error)

	// ApplyTap awards pointsEarned and consumes one energy, guarded by
	// energy > 0, and increments the stat counters in one transaction.
	// Returns the updated user row; gorm.ErrRecordNotFound when the user
	// is missing or already out of energy.
	ApplyTap(ctx context.Context, userID uint, pointsEarned int64) (*models.User, error)

	// RecordSpin applies the reward deltas (energy clamped to max_energy),
	// stamps last_wheel_spin, and writes the audit record in one
	// transaction.
	RecordSpin(ctx context.Context, spin *models.WheelSpin, pointsDelta int64, energyDelta int) error

	SpinHistory(ctx context.Context, userID uint, limit int) ([]models.WheelSpin, error)

	// RegenerateEnergy raises every user's energy by amount, clamped to
	// max_energy, and returns the number of affected users.
	RegenerateEnergy(ctx context.Context, amount int) (int64, error)

	LoadSettings(ctx context.Context) (*models.GameSettings, error)
	SaveSettings(ctx context.Context, settings *models.GameSettings) error

	// Ready reports whether the backing database is initialized.
	Ready() bool
}
