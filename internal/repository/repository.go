package repository

import (
	"context"

	"tap-game/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

var _ Store = (*Repository)(nil)

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Ready reports whether the backing database is initialized
func (r *Repository) Ready() bool {
	return r != nil && r.db != nil
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers retrieves all users
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UserUpgrades retrieves all upgrades owned by a user
func (r *Repository) UserUpgrades(ctx context.Context, userID uint) ([]models.Upgrade, error) {
	var upgrades []models.Upgrade
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&upgrades).Error
	if err != nil {
		return nil, err
	}
	return upgrades, nil
}

// GetStats retrieves gameplay stats for a user, creating a zero row if absent
func (r *Repository) GetStats(ctx context.Context, userID uint) (*models.GameStats, error) {
	var stats models.GameStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error

	if err == gorm.ErrRecordNotFound {
		stats = models.GameStats{
			UserID:              userID,
			WheelSpinsRemaining: 1,
		}
		if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// ApplyTap persists one tap in a single transaction. The award and the
// energy decrement are column expressions guarded by energy > 0, so a
// regeneration tick landing between the caller's read and this write is
// never overwritten and energy never goes negative.
func (r *Repository) ApplyTap(ctx context.Context, userID uint, pointsEarned int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND energy > 0", userID).
			Updates(map[string]interface{}{
				"points": gorm.Expr("points + ?", pointsEarned),
				"energy": gorm.Expr("energy - 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		initialStats := models.GameStats{
			UserID:              userID,
			TotalTaps:           1,
			TotalEarned:         pointsEarned,
			WheelSpinsRemaining: 1,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_taps":   gorm.Expr("total_taps + 1"),
				"total_earned": gorm.Expr("total_earned + ?", pointsEarned),
				"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).Create(&initialStats).Error; err != nil {
			return err
		}

		return tx.First(&user, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordSpin persists one wheel spin in a single transaction: the reward
// deltas as column expressions, the spin timestamp on stats, and the audit
// record. Energy rewards clamp to max_energy in SQL; the CASE expression
// keeps the statement portable between postgres and sqlite.
func (r *Repository) RecordSpin(ctx context.Context, spin *models.WheelSpin, pointsDelta int64, energyDelta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if pointsDelta != 0 {
			if err := tx.Model(&models.User{}).
				Where("id = ?", spin.UserID).
				Update("points", gorm.Expr("points + ?", pointsDelta)).Error; err != nil {
				return err
			}
		}
		if energyDelta != 0 {
			if err := tx.Model(&models.User{}).
				Where("id = ?", spin.UserID).
				Update("energy", gorm.Expr(
					"CASE WHEN energy + ? >= max_energy THEN max_energy ELSE energy + ? END",
					energyDelta, energyDelta,
				)).Error; err != nil {
				return err
			}
		}

		initialStats := models.GameStats{
			UserID:        spin.UserID,
			LastWheelSpin: &spin.CreatedAt,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_wheel_spin": spin.CreatedAt,
				"updated_at":      gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).Create(&initialStats).Error; err != nil {
			return err
		}

		return tx.Create(spin).Error
	})
}

// SpinHistory retrieves recent wheel spins for a user, newest first
func (r *Repository) SpinHistory(ctx context.Context, userID uint, limit int) ([]models.WheelSpin, error) {
	var spins []models.WheelSpin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&spins).Error
	if err != nil {
		return nil, err
	}
	return spins, nil
}

// RegenerateEnergy raises every user's energy by amount with a single bulk
// update, clamped to max_energy. Users already at cap are untouched.
// The CASE expression keeps the statement portable between postgres and
// sqlite (no LEAST/MIN divergence).
func (r *Repository) RegenerateEnergy(ctx context.Context, amount int) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE users
		 SET energy = CASE WHEN energy + ? >= max_energy THEN max_energy ELSE energy + ? END
		 WHERE energy < max_energy`,
		amount, amount,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// LoadSettings retrieves the single game settings row
func (r *Repository) LoadSettings(ctx context.Context) (*models.GameSettings, error) {
	var settings models.GameSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings persists the game settings row
func (r *Repository) SaveSettings(ctx context.Context, settings *models.GameSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
