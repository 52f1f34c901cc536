package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"tap-game/internal/repository"
)

// Regenerator periodically raises every user's energy toward their cap.
// It owns its schedule: Start, Reconfigure, and Stop guarantee at most one
// active ticker at any time.
type Regenerator struct {
	store repository.Store

	mu       sync.Mutex
	amount   int
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewRegenerator creates a regenerator with the given tick parameters.
// The schedule does not run until Start is called.
func NewRegenerator(store repository.Store, amount, intervalSeconds int) *Regenerator {
	if intervalSeconds <= 0 {
		intervalSeconds = 1
	}
	if amount < 0 {
		amount = 0
	}
	return &Regenerator{
		store:    store,
		amount:   amount,
		interval: time.Duration(intervalSeconds) * time.Second,
	}
}

// Start launches the regeneration schedule. Calling Start on a running
// regenerator is a no-op.
func (r *Regenerator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

// Reconfigure atomically replaces the running schedule: the previous ticker
// is stopped before the new one starts.
func (r *Regenerator) Reconfigure(amount, intervalSeconds int) error {
	if amount < 0 {
		return fmt.Errorf("regen amount must not be negative")
	}
	if intervalSeconds <= 0 {
		return fmt.Errorf("regen interval must be positive")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	wasRunning := r.stop != nil
	r.stopLocked()
	r.amount = amount
	r.interval = time.Duration(intervalSeconds) * time.Second
	if wasRunning {
		r.startLocked()
	}
	return nil
}

// Stop shuts the schedule down. Safe to call on a stopped regenerator.
func (r *Regenerator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Tick runs one regeneration pass immediately, outside the schedule
func (r *Regenerator) Tick() {
	r.mu.Lock()
	amount := r.amount
	r.mu.Unlock()
	r.tick(amount)
}

func (r *Regenerator) startLocked() {
	if r.stop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop, r.done = stop, done
	go r.run(r.amount, r.interval, stop, done)
}

func (r *Regenerator) stopLocked() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop, r.done = nil, nil
}

func (r *Regenerator) run(amount int, interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	log.Printf("[EnergyRegen] schedule started: +%d energy every %s", amount, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick(amount)
		case <-stop:
			log.Println("[EnergyRegen] schedule stopped")
			return
		}
	}
}

// tick performs one regeneration pass. Failures are logged and never
// terminate the schedule; the next tick runs regardless.
func (r *Regenerator) tick(amount int) {
	if r.store == nil || !r.store.Ready() {
		log.Println("[EnergyRegen] store not ready, skipping tick")
		return
	}
	if amount <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	affected, err := r.store.RegenerateEnergy(ctx, amount)
	if err != nil {
		log.Printf("[EnergyRegen] tick failed: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("[EnergyRegen] restored energy for %d users", affected)
	}
}
