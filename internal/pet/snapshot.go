package pet

import "time"

// Profile identifies the companion and tracks its age.
type Profile struct {
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	AgeHours  int       `json:"age_hours"`
	LastDecay time.Time `json:"last_decay"`
}

// Snapshot is the persisted form of a simulation context.
type Snapshot struct {
	Profile         Profile
	Stats           Stats
	Rituals         RitualCounts
	Prayers         PrayerStatus
	LastInteraction time.Time
	// PrayerDay is the calendar day (YYYY-MM-DD) PrayerStatus belongs to.
	PrayerDay string
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Rituals = s.Rituals.Clone()
	c.Prayers = s.Prayers.Clone()
	return &c
}

// Activity kinds recorded in the journal.
const (
	KindRitual = "ritual"
	KindPrayer = "prayer"
	KindRest   = "rest"
	KindStudy  = "study"
	KindReset  = "reset"
)

// Activity is one accepted action, with the stats it produced.
type Activity struct {
	Kind   string
	Detail string
	Stats  Stats
	At     time.Time
}
