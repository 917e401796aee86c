package engine

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/lazypower/soulgatchi/internal/pet"
	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

// Rules are the tunable timings and defaults of the simulation.
type Rules struct {
	Baseline           float64
	DecayCheckInterval time.Duration
	DecayWindow        time.Duration
	AgeInterval        time.Duration
	DailyRollover      bool
	DefaultName        string
	DefaultEmoji       string
}

// DefaultRules returns the canonical ruleset: baseline 20, one point of
// decay per 10 seconds checked every 5, one hour of age per hour alive.
func DefaultRules() Rules {
	return Rules{
		Baseline:           20,
		DecayCheckInterval: 5 * time.Second,
		DecayWindow:        10 * time.Second,
		AgeInterval:        time.Hour,
		DailyRollover:      true,
		DefaultName:        "SoulGatchi",
		DefaultEmoji:       "🥺",
	}
}

// withDefaults fills unset fields from DefaultRules.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r == (Rules{}) {
		return d
	}
	if r.Baseline <= 0 {
		r.Baseline = d.Baseline
	}
	if r.DecayCheckInterval <= 0 {
		r.DecayCheckInterval = d.DecayCheckInterval
	}
	if r.DecayWindow <= 0 {
		r.DecayWindow = d.DecayWindow
	}
	if r.AgeInterval <= 0 {
		r.AgeInterval = d.AgeInterval
	}
	if r.DefaultName == "" {
		r.DefaultName = d.DefaultName
	}
	if r.DefaultEmoji == "" {
		r.DefaultEmoji = d.DefaultEmoji
	}
	return r
}

// Options configures an Engine.
type Options struct {
	Gateway Gateway
	Journal Journal
	Clock   Clock
	Logger  *zap.Logger
	Rules   Rules
}

// Engine owns one simulation context. All mutations, whether user actions or
// scheduler ticks, are serialized through mu.
type Engine struct {
	mu    sync.Mutex
	state *pet.Snapshot

	rules   Rules
	clock   Clock
	log     *zap.Logger
	persist *persister

	base    context.Context
	sched   *schedule
	gen     uint64
	loops   sync.WaitGroup
	stopped bool
}

// schedule is one generation of the decay and age loops.
type schedule struct {
	gen    uint64
	cancel context.CancelFunc
}

// New creates an Engine, restoring the persisted snapshot if the gateway has
// one and starting a fresh companion otherwise.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gateway == nil {
		opts.Gateway = memoryGateway{}
	}
	if opts.Journal == nil {
		opts.Journal = nopJournal{}
	}
	opts.Rules = opts.Rules.withDefaults()

	e := &Engine{
		rules: opts.Rules,
		clock: opts.Clock,
		log:   opts.Logger,
	}
	e.persist = newPersister(opts.Gateway, opts.Journal, opts.Logger)

	if snap, ok := opts.Gateway.Load(); ok {
		e.state = e.normalize(snap)
		e.log.Info("restored pet",
			zap.String("name", e.state.Profile.Name),
			zap.Int("age_hours", e.state.Profile.AgeHours),
			zap.Bool("alive", e.aliveLocked()))
	} else {
		now := e.clock.Now()
		e.state = e.fresh(e.rules.DefaultName, e.rules.DefaultEmoji, now)
		name, emoji := e.state.Profile.Name, e.state.Profile.Emoji
		e.persist.record(func(j Journal) { j.BeginLife(name, emoji, now) })
		e.log.Info("created pet", zap.String("name", e.state.Profile.Name))
	}
	e.saveLocked()
	return e
}

// Start launches the decay and age loops. Loops stop when ctx is cancelled,
// when the pet dies, or on Stop.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	e.base = ctx
	if e.aliveLocked() {
		e.startLoopsLocked()
	}
}

// Stop cancels the loops and drains pending persistence. It is safe to call
// more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.stopLoopsLocked()
	e.mu.Unlock()

	e.loops.Wait()
	e.persist.close()
}

// Flush blocks until every queued save and journal write has been handed to
// the gateway.
func (e *Engine) Flush() {
	e.persist.flush()
}

// Status is a consistent read of the simulation context.
type Status struct {
	Profile               pet.Profile      `json:"profile"`
	Stats                 pet.Stats        `json:"stats"`
	Mood                  pet.Mood         `json:"mood"`
	Stage                 pet.Stage        `json:"stage"`
	Alive                 bool             `json:"alive"`
	SecondsUntilNextDecay int              `json:"seconds_until_next_decay"`
	Rituals               pet.RitualCounts `json:"ritual_counts"`
	Prayers               pet.PrayerStatus `json:"prayer_status"`
	Achievements          []string         `json:"achievements"`
	LastInteraction       time.Time        `json:"last_interaction"`
}

// Status returns the current state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rolloverLocked(e.clock.Now())
	return e.statusLocked()
}

func (e *Engine) statusLocked() Status {
	s := e.state
	return Status{
		Profile:               s.Profile,
		Stats:                 s.Stats,
		Mood:                  pet.Classify(s.Stats),
		Stage:                 pet.StageFor(s.Profile.AgeHours),
		Alive:                 e.aliveLocked(),
		SecondsUntilNextDecay: e.secondsUntilDecayLocked(),
		Rituals:               s.Rituals.Clone(),
		Prayers:               s.Prayers.Clone(),
		Achievements:          pet.Achievements(s.Stats, s.Profile.AgeHours),
		LastInteraction:       s.LastInteraction,
	}
}

// Stats returns the current stats.
func (e *Engine) Stats() pet.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Stats
}

// Mood classifies the current stats.
func (e *Engine) Mood() pet.Mood {
	return pet.Classify(e.Stats())
}

// AgeHours returns the companion's age.
func (e *Engine) AgeHours() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Profile.AgeHours
}

// IsAlive is derived from the stats on every call.
func (e *Engine) IsAlive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.aliveLocked()
}

// SecondsUntilNextDecay returns max(0, window - time since last decay),
// rounded up to whole seconds.
func (e *Engine) SecondsUntilNextDecay() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.secondsUntilDecayLocked()
}

func (e *Engine) secondsUntilDecayLocked() int {
	remaining := e.rules.DecayWindow - e.clock.Now().Sub(e.state.Profile.LastDecay)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}

// Snapshot returns a deep copy of the simulation context.
func (e *Engine) Snapshot() *pet.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

func (e *Engine) fresh(name, emoji string, now time.Time) *pet.Snapshot {
	return &pet.Snapshot{
		Profile: pet.Profile{
			Name:      name,
			Emoji:     emoji,
			AgeHours:  0,
			LastDecay: now,
		},
		Stats:           pet.Uniform(e.rules.Baseline),
		Rituals:         pet.NewRitualCounts(),
		Prayers:         pet.NewPrayerStatus(),
		LastInteraction: now,
		PrayerDay:       now.Format(dayLayout),
	}
}

// normalize repairs a loaded snapshot: stats clamped, every canonical ritual
// and prayer slot present, timestamps not in the future.
func (e *Engine) normalize(s *pet.Snapshot) *pet.Snapshot {
	s = s.Clone()
	now := e.clock.Now()
	s.Stats = s.Stats.Clamped()
	if s.Rituals == nil {
		s.Rituals = pet.NewRitualCounts()
	}
	for _, name := range pet.CanonicalRituals {
		if _, ok := s.Rituals[name]; !ok {
			s.Rituals[name] = 0
		}
	}
	for name, n := range s.Rituals {
		if n < 0 {
			s.Rituals[name] = 0
		}
	}
	if s.Prayers == nil {
		s.Prayers = pet.NewPrayerStatus()
	}
	for _, p := range pet.Prayers {
		if _, ok := s.Prayers[p]; !ok {
			s.Prayers[p] = false
		}
	}
	if s.Profile.Name == "" {
		s.Profile.Name = e.rules.DefaultName
	}
	if s.Profile.AgeHours < 0 {
		s.Profile.AgeHours = 0
	}
	if s.Profile.LastDecay.IsZero() || s.Profile.LastDecay.After(now) {
		s.Profile.LastDecay = now
	}
	if s.PrayerDay == "" {
		s.PrayerDay = now.Format(dayLayout)
	}
	return s
}

func (e *Engine) saveLocked() {
	e.persist.save(e.state.Clone())
}
