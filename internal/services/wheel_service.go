package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tap-game/internal/models"
	"tap-game/internal/repository"
)

// SpinCooldown is the rolling window during which a user may not spin again
const SpinCooldown = 24 * time.Hour

// WheelService runs the daily reward wheel: one weighted draw per user per
// rolling 24-hour window.
type WheelService struct {
	store    repository.Store
	settings *SettingsService

	// rand draws uniform samples in [0, 1); injectable for tests
	rand func() float64

	// mu serializes the cooldown check-then-act so a double-clicked spin
	// cannot land twice inside one window.
	mu sync.Mutex

	now func() time.Time
}

// SpinResult is the outcome of one successful wheel spin
type SpinResult struct {
	Reward  string `json:"reward"`
	Amount  int    `json:"amount"`
	Message string `json:"message"`
}

// NewWheelService creates a new WheelService
func NewWheelService(store repository.Store, settings *SettingsService) *WheelService {
	return &WheelService{
		store:    store,
		settings: settings,
		rand:     rand.Float64,
		now:      time.Now,
	}
}

// CanSpin reports whether the user's cooldown window has expired
func (s *WheelService) CanSpin(ctx context.Context, userID uint) (bool, error) {
	last, err := s.LastSpin(ctx, userID)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	return s.now().Sub(*last) >= SpinCooldown, nil
}

// LastSpin returns the user's recorded spin timestamp, or nil if they have
// never spun
func (s *WheelService) LastSpin(ctx context.Context, userID uint) (*time.Time, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats, err := s.store.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.LastWheelSpin, nil
}

// Spin draws a reward from the configured wheel, applies it to the user, and
// starts the 24-hour cooldown. Inside the cooldown window nothing is mutated.
func (s *WheelService) Spin(ctx context.Context, userID uint) (*SpinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats, err := s.store.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if stats.LastWheelSpin != nil && now.Sub(*stats.LastWheelSpin) < SpinCooldown {
		return nil, ErrSpinCooldown
	}

	rewards := s.settings.Get().WheelRewards
	if len(rewards) == 0 {
		return nil, fmt.Errorf("no wheel rewards configured")
	}

	reward, matched := pickReward(rewards, s.rand())
	if !matched {
		log.Printf("[Wheel] reward probabilities fell short of the drawn sample, falling back to %q", reward.Type)
	}

	amount := 0
	var pointsDelta int64
	var energyDelta int
	if reward.Type != "character" {
		amount = s.drawAmount(reward)
		switch reward.Type {
		case "coins":
			pointsDelta = int64(amount)
		case "energy":
			energyDelta = amount
		}
		// other reward types are recorded but not applied to numeric fields
	}

	spin := &models.WheelSpin{
		ID:         uuid.New(),
		UserID:     userID,
		RewardType: reward.Type,
		Amount:     amount,
		Descriptor: fmt.Sprintf("%s:%d", reward.Type, amount),
		CreatedAt:  now,
	}

	if err := s.store.RecordSpin(ctx, spin, pointsDelta, energyDelta); err != nil {
		return nil, err
	}

	return &SpinResult{
		Reward:  reward.Type,
		Amount:  amount,
		Message: spinMessage(reward, amount),
	}, nil
}

// History returns the user's recent spin audit records, newest first
func (s *WheelService) History(ctx context.Context, userID uint, limit int) ([]models.WheelSpin, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.SpinHistory(ctx, userID, limit)
}

// drawAmount picks a uniform integer in [min, max] inclusive
func (s *WheelService) drawAmount(reward models.WheelReward) int {
	span := reward.Max - reward.Min + 1
	if span < 1 {
		span = 1
	}
	return int(math.Floor(s.rand()*float64(span))) + reward.Min
}

// pickReward walks the reward list in its declared order accumulating
// probabilities and selects the first entry whose cumulative probability
// reaches the sample. When the probabilities sum below 1.0 and the sample
// overshoots, the first entry is the defined fallback; the second return
// value reports whether the walk matched normally.
func pickReward(rewards models.WheelRewardList, sample float64) (models.WheelReward, bool) {
	cum := 0.0
	for _, r := range rewards {
		cum += r.Probability
		if sample <= cum {
			return r, true
		}
	}
	return rewards[0], false
}

func spinMessage(reward models.WheelReward, amount int) string {
	switch reward.Type {
	case "coins":
		return fmt.Sprintf("You won %d coins!", amount)
	case "energy":
		return fmt.Sprintf("You won %d energy!", amount)
	case "character":
		return "You won a new character!"
	default:
		return fmt.Sprintf("You won %s x%d!", reward.Type, amount)
	}
}
