package pet

import "fmt"

// Prayer is one of the six daily prayer slots.
type Prayer string

const (
	Fajr     Prayer = "Fajr"
	Dhuhr    Prayer = "Dhuhr"
	Asr      Prayer = "Asr"
	Maghrib  Prayer = "Maghrib"
	Isha     Prayer = "Isha"
	Tahajjud Prayer = "Tahajjud"
)

// Prayers lists the slots in daily order.
var Prayers = []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha, Tahajjud}

// PrayerReward is applied the first time a slot is completed each day.
var PrayerReward = Delta{Spirituality: 15, Happiness: 10, Energy: 8, Health: 8}

// ParsePrayer validates a slot name. Matching is exact.
func ParsePrayer(s string) (Prayer, error) {
	for _, p := range Prayers {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown prayer %q", s)
}

// PrayerStatus records which slots were completed today.
type PrayerStatus map[Prayer]bool

// NewPrayerStatus returns a status with every slot incomplete.
func NewPrayerStatus() PrayerStatus {
	ps := make(PrayerStatus, len(Prayers))
	for _, p := range Prayers {
		ps[p] = false
	}
	return ps
}

// Clone returns an independent copy.
func (ps PrayerStatus) Clone() PrayerStatus {
	out := make(PrayerStatus, len(ps))
	for k, v := range ps {
		out[k] = v
	}
	return out
}

// Completed counts slots marked done.
func (ps PrayerStatus) Completed() int {
	n := 0
	for _, done := range ps {
		if done {
			n++
		}
	}
	return n
}
