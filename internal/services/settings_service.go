package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tap-game/internal/models"
	"tap-game/internal/repository"
)

// Reconfigurer restarts a running regeneration schedule with new parameters
type Reconfigurer interface {
	Reconfigure(amount, intervalSeconds int) error
}

// SettingsService owns the process-lifetime GameSettings cache. Settings are
// loaded once at startup and mutated only through the admin update calls,
// which persist before refreshing the cache.
type SettingsService struct {
	store repository.Store

	mu      sync.RWMutex
	current models.GameSettings
	regen   Reconfigurer
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	BaseTapPoints        *int                    `json:"baseTapPoints"`
	RegenAmount          *int                    `json:"regenAmount"`
	RegenIntervalSeconds *int                    `json:"intervalSeconds"`
	WheelRewards         *models.WheelRewardList `json:"wheelRewards"`
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(store repository.Store) *SettingsService {
	return &SettingsService{store: store}
}

// AttachRegenerator wires the energy regenerator so settings updates can
// restart its schedule
func (s *SettingsService) AttachRegenerator(regen Reconfigurer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regen = regen
}

// EnsureDefaults loads the settings row, seeding it with defaults on first
// start, and primes the in-memory cache.
func (s *SettingsService) EnsureDefaults(ctx context.Context, defaults models.GameSettings) error {
	settings, err := s.store.LoadSettings(ctx)
	if err == gorm.ErrRecordNotFound {
		seeded := defaults
		seeded.ID = 1
		if len(seeded.WheelRewards) == 0 {
			seeded.WheelRewards = models.DefaultWheelRewards()
		}
		if err := s.store.SaveSettings(ctx, &seeded); err != nil {
			return fmt.Errorf("failed to seed game settings: %w", err)
		}
		settings = &seeded
		log.Println("[Settings] seeded default game settings")
	} else if err != nil {
		return fmt.Errorf("failed to load game settings: %w", err)
	}

	warnOnProbabilityDrift(settings.WheelRewards)

	s.mu.Lock()
	s.current = *settings
	s.mu.Unlock()
	return nil
}

// Get returns a snapshot of the current settings
func (s *SettingsService) Get() models.GameSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies a partial settings update, persists it, refreshes the cache,
// and restarts the regeneration schedule when its parameters changed.
func (s *SettingsService) Update(ctx context.Context, patch SettingsPatch) (*models.GameSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.current
	regenChanged := false

	if patch.BaseTapPoints != nil {
		if *patch.BaseTapPoints < 0 {
			return nil, fmt.Errorf("baseTapPoints must not be negative")
		}
		updated.BaseTapPoints = *patch.BaseTapPoints
	}
	if patch.RegenAmount != nil {
		if *patch.RegenAmount < 0 {
			return nil, fmt.Errorf("regenAmount must not be negative")
		}
		updated.RegenAmount = *patch.RegenAmount
		regenChanged = true
	}
	if patch.RegenIntervalSeconds != nil {
		if *patch.RegenIntervalSeconds <= 0 {
			return nil, fmt.Errorf("intervalSeconds must be positive")
		}
		updated.RegenIntervalSeconds = *patch.RegenIntervalSeconds
		regenChanged = true
	}
	if patch.WheelRewards != nil {
		if len(*patch.WheelRewards) == 0 {
			return nil, fmt.Errorf("wheelRewards must not be empty")
		}
		updated.WheelRewards = *patch.WheelRewards
		warnOnProbabilityDrift(updated.WheelRewards)
	}

	if err := s.store.SaveSettings(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save game settings: %w", err)
	}
	s.current = updated

	if regenChanged && s.regen != nil {
		if err := s.regen.Reconfigure(updated.RegenAmount, updated.RegenIntervalSeconds); err != nil {
			return nil, fmt.Errorf("failed to restart regeneration schedule: %w", err)
		}
	}

	return &updated, nil
}

// UpdateEnergySettings replaces the regeneration parameters and restarts the
// running schedule
func (s *SettingsService) UpdateEnergySettings(ctx context.Context, regenAmount, intervalSeconds int) error {
	_, err := s.Update(ctx, SettingsPatch{
		RegenAmount:          &regenAmount,
		RegenIntervalSeconds: &intervalSeconds,
	})
	return err
}

// warnOnProbabilityDrift logs when reward probabilities do not sum to 1.0.
// Drift is tolerated: the wheel falls back to the first entry on shortfall.
// decimal sums avoid flagging tables that only look wrong through float
// accumulation.
func warnOnProbabilityDrift(rewards models.WheelRewardList) {
	sum := decimal.Zero
	for _, r := range rewards {
		sum = sum.Add(decimal.NewFromFloat(r.Probability))
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		log.Printf("[Settings] wheel reward probabilities sum to %s, not 1.0; shortfall falls back to the first reward", sum)
	}
}
