package engine

import (
	"context"
	"time"

	"github.com/lazypower/soulgatchi/internal/pet"
	"go.uber.org/zap"
)

func (e *Engine) aliveLocked() bool {
	return !pet.Fatal(e.state.Stats)
}

// afterMutationLocked runs after every stat change to a living pet.
func (e *Engine) afterMutationLocked(now time.Time) {
	if !e.aliveLocked() {
		e.stopLoopsLocked()
		age := e.state.Profile.AgeHours
		e.persist.record(func(j Journal) { j.EndLife(age, now) })
		e.log.Info("pet died",
			zap.String("name", e.state.Profile.Name),
			zap.Int("age_hours", age),
			zap.Float64("health", e.state.Stats.Health),
			zap.Float64("spirituality", e.state.Stats.Spirituality))
	}
	e.saveLocked()
}

// Reset starts a new life at the baseline stats. An empty name falls back to
// the default; an empty emoji keeps the current one.
func (e *Engine) Reset(name, emoji string) Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if name == "" {
		name = e.rules.DefaultName
	}
	if emoji == "" {
		emoji = e.state.Profile.Emoji
	}
	if emoji == "" {
		emoji = e.rules.DefaultEmoji
	}

	if e.aliveLocked() {
		age := e.state.Profile.AgeHours
		e.persist.record(func(j Journal) { j.EndLife(age, now) })
	}

	e.stopLoopsLocked()
	e.state = e.fresh(name, emoji, now)

	stats := e.state.Stats
	e.persist.record(func(j Journal) {
		j.BeginLife(name, emoji, now)
		j.RecordActivity(pet.Activity{Kind: pet.KindReset, Detail: name, Stats: stats, At: now})
	})
	e.startLoopsLocked()
	e.saveLocked()

	e.log.Info("pet reset", zap.String("name", name), zap.Float64("baseline", e.rules.Baseline))
	return e.statusLocked()
}

// ResetDaily clears today's prayer status. It applies whether or not the
// pet is alive.
func (e *Engine) ResetDaily() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetDailyLocked(e.clock.Now())
}

func (e *Engine) resetDailyLocked(now time.Time) {
	e.state.Prayers = pet.NewPrayerStatus()
	e.state.PrayerDay = now.Format(dayLayout)
	e.saveLocked()
}

func (e *Engine) rolloverLocked(now time.Time) {
	if !e.rules.DailyRollover {
		return
	}
	day := now.Format(dayLayout)
	if day == e.state.PrayerDay {
		return
	}
	e.log.Info("daily rollover", zap.String("from", e.state.PrayerDay), zap.String("to", day))
	e.resetDailyLocked(now)
}

func (e *Engine) startLoopsLocked() {
	if e.base == nil || e.stopped || e.sched != nil || !e.aliveLocked() {
		return
	}
	e.gen++
	ctx, cancel := context.WithCancel(e.base)
	e.sched = &schedule{gen: e.gen, cancel: cancel}

	e.loops.Add(2)
	go e.runLoop(ctx, e.gen, e.rules.DecayCheckInterval, e.checkDecayLocked)
	go e.runLoop(ctx, e.gen, e.rules.AgeInterval, e.tickAgeLocked)
}

// stopLoopsLocked cancels the current loops. Ticks already waiting on the
// lock see a nil or newer schedule and do nothing.
func (e *Engine) stopLoopsLocked() {
	if e.sched == nil {
		return
	}
	e.sched.cancel()
	e.sched = nil
}
