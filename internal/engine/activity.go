package engine

import (
	"fmt"

	"github.com/lazypower/soulgatchi/internal/pet"
	"go.uber.org/zap"
)

// Result describes the outcome of a user action.
type Result struct {
	// Accepted is false when the pet is dead.
	Accepted bool `json:"accepted"`
	// Changed is false when an accepted action had no effect, such as
	// repeating a prayer already completed today.
	Changed      bool     `json:"changed"`
	Message      string   `json:"message"`
	Mood         pet.Mood `json:"mood"`
	MoodImproved bool     `json:"mood_improved"`
	SetCompleted bool     `json:"set_completed"`
	Count        int      `json:"count,omitempty"`
	Status       Status   `json:"pet"`
}

// PerformRitual counts one recitation of name and applies its effect. Names
// outside the canonical four are accepted and earn only the base increment.
func (e *Engine) PerformRitual(name string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	e.rolloverLocked(now)
	if !e.aliveLocked() {
		return e.rejectLocked()
	}

	count := e.state.Rituals[name] + 1
	e.state.Rituals[name] = count
	d, set := pet.RitualEffect(name, count)

	res := e.applyLocked(pet.KindRitual, name, d, fmt.Sprintf("Recited: %s (%dx)", name, count))
	res.Count = count
	res.SetCompleted = set
	if set {
		e.log.Info("ritual set completed", zap.String("ritual", name), zap.Int("count", count))
	}
	return res
}

// CompletePrayer marks a slot done for today and applies the prayer reward.
// A slot already completed today is accepted without further effect.
func (e *Engine) CompletePrayer(slot pet.Prayer) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	e.rolloverLocked(now)
	if !e.aliveLocked() {
		return e.rejectLocked()
	}

	done, known := e.state.Prayers[slot]
	if !known {
		return Result{
			Message: fmt.Sprintf("Unknown prayer: %s", slot),
			Mood:    pet.Classify(e.state.Stats),
			Status:  e.statusLocked(),
		}
	}
	if done {
		return Result{
			Accepted: true,
			Message:  fmt.Sprintf("Already performed: %s prayer", slot),
			Mood:     pet.Classify(e.state.Stats),
			Status:   e.statusLocked(),
		}
	}

	e.state.Prayers[slot] = true
	return e.applyLocked(pet.KindPrayer, string(slot), pet.PrayerReward, fmt.Sprintf("Performed: %s prayer", slot))
}

// Rest restores energy and a little health.
func (e *Engine) Rest() Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rolloverLocked(e.clock.Now())
	if !e.aliveLocked() {
		return e.rejectLocked()
	}
	return e.applyLocked(pet.KindRest, "", pet.RestEffect, "Resting...")
}

// Study trades energy for spirituality and happiness. The topic is recorded
// but does not change the effect.
func (e *Engine) Study(topic string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rolloverLocked(e.clock.Now())
	if !e.aliveLocked() {
		return e.rejectLocked()
	}
	return e.applyLocked(pet.KindStudy, topic, pet.StudyEffect, fmt.Sprintf("Learning: %s", topic))
}

// applyLocked applies d as an interaction: it resets the decay window,
// journals the action and re-evaluates death.
func (e *Engine) applyLocked(kind, detail string, d pet.Delta, msg string) Result {
	now := e.clock.Now()
	prev := pet.Classify(e.state.Stats)

	e.state.Stats = pet.ApplyDelta(e.state.Stats, d)
	e.state.Profile.LastDecay = now
	e.state.LastInteraction = now

	next := pet.Classify(e.state.Stats)
	act := pet.Activity{Kind: kind, Detail: detail, Stats: e.state.Stats, At: now}
	e.persist.record(func(j Journal) { j.RecordActivity(act) })

	e.afterMutationLocked(now)

	return Result{
		Accepted:     true,
		Changed:      true,
		Message:      msg,
		Mood:         next,
		MoodImproved: pet.Improved(prev, next),
		Status:       e.statusLocked(),
	}
}

func (e *Engine) rejectLocked() Result {
	return Result{
		Message: fmt.Sprintf("%s has passed away", e.state.Profile.Name),
		Mood:    pet.Classify(e.state.Stats),
		Status:  e.statusLocked(),
	}
}
