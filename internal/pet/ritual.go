package pet

// Canonical rituals. Any other name is accepted and earns only the base increment.
const (
	RitualSubhanallah    = "Subhanallah"
	RitualAlhamdulillah  = "Alhamdulillah"
	RitualAllahuAkbar    = "Allahu Akbar"
	RitualAstaghfirullah = "Astaghfirullah"
)

// CanonicalRituals lists the rituals seeded at zero in a fresh RitualCounts.
var CanonicalRituals = []string{
	RitualSubhanallah,
	RitualAlhamdulillah,
	RitualAllahuAkbar,
	RitualAstaghfirullah,
}

const (
	// SetSize is the repetition count that completes a set.
	SetSize = 33

	ritualBase      = 0.5
	ritualTypeBonus = 0.5
	setBonus        = 3
	setTypeBonus    = 2
)

var ritualStat = map[string]Stat{
	RitualSubhanallah:    Spirituality,
	RitualAlhamdulillah:  Happiness,
	RitualAllahuAkbar:    Energy,
	RitualAstaghfirullah: Health,
}

// RitualCounts maps ritual name to repetitions.
type RitualCounts map[string]int

// NewRitualCounts returns counts with the canonical rituals at zero.
func NewRitualCounts() RitualCounts {
	rc := make(RitualCounts, len(CanonicalRituals))
	for _, name := range CanonicalRituals {
		rc[name] = 0
	}
	return rc
}

// Clone returns an independent copy.
func (rc RitualCounts) Clone() RitualCounts {
	out := make(RitualCounts, len(rc))
	for k, v := range rc {
		out[k] = v
	}
	return out
}

// DesignatedStat returns the stat a ritual favours, if it has one.
func DesignatedStat(name string) (Stat, bool) {
	s, ok := ritualStat[name]
	return s, ok
}

// RitualEffect returns the stat change for a ritual whose counter has just
// reached count, and whether that repetition completed a set. Only exact
// multiples of SetSize earn the set bonus.
func RitualEffect(name string, count int) (Delta, bool) {
	d := All(ritualBase)
	stat, typed := ritualStat[name]
	if typed {
		d = d.Add(stat, ritualTypeBonus)
	}

	completed := count > 0 && count%SetSize == 0
	if completed {
		d = d.Plus(All(setBonus))
		if typed {
			d = d.Add(stat, setTypeBonus)
		}
	}
	return d, completed
}
