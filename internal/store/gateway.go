package store

import (
	"time"

	"github.com/lazypower/soulgatchi/internal/pet"
	"go.uber.org/zap"
)

// Gateway adapts DB to the engine's persistence and journal contracts.
// Storage errors are logged and never returned, so the simulation keeps
// running in memory when the database is unavailable.
type Gateway struct {
	db  *DB
	log *zap.Logger
}

// NewGateway wraps db. A nil logger discards output.
func NewGateway(db *DB, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{db: db, log: log.Named("store")}
}

// Save writes the snapshot, replacing the stored one.
func (g *Gateway) Save(s *pet.Snapshot) {
	if err := g.db.SaveSnapshot(s); err != nil {
		g.log.Error("save snapshot", zap.Error(err))
	}
}

// Load returns false when nothing is stored or the stored data is unreadable.
func (g *Gateway) Load() (*pet.Snapshot, bool) {
	s, err := g.db.LoadSnapshot()
	if err != nil {
		g.log.Warn("load snapshot, starting fresh", zap.Error(err))
		return nil, false
	}
	if s == nil {
		return nil, false
	}
	return s, true
}

// Clear removes the stored snapshot.
func (g *Gateway) Clear() {
	if err := g.db.ClearSnapshot(); err != nil {
		g.log.Error("clear snapshot", zap.Error(err))
	}
}

// RecordActivity appends an action to the journal.
func (g *Gateway) RecordActivity(a pet.Activity) {
	if err := g.db.AddActivity(a); err != nil {
		g.log.Error("record activity", zap.String("kind", a.Kind), zap.Error(err))
	}
}

// BeginLife opens a new life in the ledger.
func (g *Gateway) BeginLife(name, emoji string, at time.Time) {
	if _, err := g.db.BeginLife(name, emoji, at); err != nil {
		g.log.Error("begin life", zap.String("name", name), zap.Error(err))
	}
}

// EndLife closes the open life.
func (g *Gateway) EndLife(ageHours int, at time.Time) {
	if err := g.db.EndLife(ageHours, at); err != nil {
		g.log.Warn("end life", zap.Int("age_hours", ageHours), zap.Error(err))
	}
}
