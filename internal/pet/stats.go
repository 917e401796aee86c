// Package pet holds the companion's state model and the pure rules that act
// on it: stat arithmetic, mood classification, ritual and prayer effects,
// achievements, and the persisted snapshot shape.
package pet

import "fmt"

const (
	MinStat = 0
	MaxStat = 100
)

// Stat names one of the four attributes.
type Stat int

const (
	Health Stat = iota
	Spirituality
	Energy
	Happiness
)

func (s Stat) String() string {
	switch s {
	case Health:
		return "health"
	case Spirituality:
		return "spirituality"
	case Energy:
		return "energy"
	case Happiness:
		return "happiness"
	}
	return fmt.Sprintf("stat(%d)", int(s))
}

// Stats is the companion's condition. Every field stays within [0, 100].
type Stats struct {
	Health       float64 `json:"health"`
	Spirituality float64 `json:"spirituality"`
	Energy       float64 `json:"energy"`
	Happiness    float64 `json:"happiness"`
}

// Uniform returns Stats with all four attributes set to v, clamped.
func Uniform(v float64) Stats {
	c := clamp(v)
	return Stats{Health: c, Spirituality: c, Energy: c, Happiness: c}
}

// Get returns the value of one attribute.
func (s Stats) Get(stat Stat) float64 {
	switch stat {
	case Health:
		return s.Health
	case Spirituality:
		return s.Spirituality
	case Energy:
		return s.Energy
	case Happiness:
		return s.Happiness
	}
	return 0
}

// Clamped returns s with every attribute forced into range.
func (s Stats) Clamped() Stats {
	return Stats{
		Health:       clamp(s.Health),
		Spirituality: clamp(s.Spirituality),
		Energy:       clamp(s.Energy),
		Happiness:    clamp(s.Happiness),
	}
}

// Delta is a change to apply to Stats. A zero field leaves that attribute
// unchanged.
type Delta struct {
	Health       float64
	Spirituality float64
	Energy       float64
	Happiness    float64
}

// All returns a Delta adding v to every attribute.
func All(v float64) Delta {
	return Delta{Health: v, Spirituality: v, Energy: v, Happiness: v}
}

// Add returns d with v added to one attribute.
func (d Delta) Add(stat Stat, v float64) Delta {
	switch stat {
	case Health:
		d.Health += v
	case Spirituality:
		d.Spirituality += v
	case Energy:
		d.Energy += v
	case Happiness:
		d.Happiness += v
	}
	return d
}

// Plus returns the field-wise sum of two deltas.
func (d Delta) Plus(o Delta) Delta {
	return Delta{
		Health:       d.Health + o.Health,
		Spirituality: d.Spirituality + o.Spirituality,
		Energy:       d.Energy + o.Energy,
		Happiness:    d.Happiness + o.Happiness,
	}
}

// ApplyDelta adds d to current and clamps each attribute to [0, 100].
func ApplyDelta(current Stats, d Delta) Stats {
	return Stats{
		Health:       clamp(current.Health + d.Health),
		Spirituality: clamp(current.Spirituality + d.Spirituality),
		Energy:       clamp(current.Energy + d.Energy),
		Happiness:    clamp(current.Happiness + d.Happiness),
	}
}

// Fatal reports whether s means the companion has died.
func Fatal(s Stats) bool {
	return s.Health <= MinStat || s.Spirituality <= MinStat
}

func clamp(v float64) float64 {
	if v != v { // NaN
		return MinStat
	}
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}
