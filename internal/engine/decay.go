package engine

// Decay model:
//   - every DecayCheckInterval the decay loop asks whether DecayWindow has
//     passed since Profile.LastDecay; if so all four stats drop by
//     pet.DecayAmount and LastDecay moves to now
//   - any accepted action also moves LastDecay, so steady interaction holds
//     decay off indefinitely
//   - the age loop adds one hour of age per AgeInterval of living time
//   - offline time is not replayed; the first check after a restart fires
//     at most once

import (
	"context"
	"time"

	"github.com/lazypower/soulgatchi/internal/pet"
	"go.uber.org/zap"
)

// CheckDecay runs one decay check and reports whether decay fired.
func (e *Engine) CheckDecay() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkDecayLocked()
}

// TickAge adds one hour of age to a living pet.
func (e *Engine) TickAge() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickAgeLocked()
}

func (e *Engine) checkDecayLocked() bool {
	now := e.clock.Now()
	e.rolloverLocked(now)
	if !e.aliveLocked() {
		return false
	}
	if now.Sub(e.state.Profile.LastDecay) < e.rules.DecayWindow {
		return false
	}

	e.state.Stats = pet.ApplyDelta(e.state.Stats, pet.All(-pet.DecayAmount))
	e.state.Profile.LastDecay = now
	e.log.Debug("decay",
		zap.Float64("health", e.state.Stats.Health),
		zap.Float64("spirituality", e.state.Stats.Spirituality),
		zap.Float64("energy", e.state.Stats.Energy),
		zap.Float64("happiness", e.state.Stats.Happiness))

	e.afterMutationLocked(now)
	return true
}

func (e *Engine) tickAgeLocked() bool {
	if !e.aliveLocked() {
		return false
	}
	e.state.Profile.AgeHours++
	e.saveLocked()
	e.log.Debug("aged", zap.Int("age_hours", e.state.Profile.AgeHours))
	return true
}

// runLoop calls fn every interval for as long as generation gen is current.
func (e *Engine) runLoop(ctx context.Context, gen uint64, every time.Duration, fn func() bool) {
	defer e.loops.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.mu.Lock()
			if e.sched != nil && e.sched.gen == gen {
				fn()
			}
			e.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}
