package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lazypower/soulgatchi/internal/pet"
)

// Snapshot keys. Rituals and prayers are stored one row per name under the
// ritual. and prayer. prefixes.
const (
	keyName            = "profile.name"
	keyEmoji           = "profile.emoji"
	keyAgeHours        = "profile.age_hours"
	keyLastDecay       = "profile.last_decay"
	keyHealth          = "stats.health"
	keySpirituality    = "stats.spirituality"
	keyEnergy          = "stats.energy"
	keyHappiness       = "stats.happiness"
	keyLastInteraction = "last_interaction"
	keyPrayerDay       = "prayer_day"

	ritualPrefix = "ritual."
	prayerPrefix = "prayer."
)

var requiredKeys = []string{keyName, keyHealth, keySpirituality, keyEnergy, keyHappiness}

// flatten encodes a snapshot as key/value pairs.
func flatten(s *pet.Snapshot) map[string]string {
	kv := map[string]string{
		keyName:            s.Profile.Name,
		keyEmoji:           s.Profile.Emoji,
		keyAgeHours:        strconv.Itoa(s.Profile.AgeHours),
		keyLastDecay:       formatTime(s.Profile.LastDecay),
		keyHealth:          formatFloat(s.Stats.Health),
		keySpirituality:    formatFloat(s.Stats.Spirituality),
		keyEnergy:          formatFloat(s.Stats.Energy),
		keyHappiness:       formatFloat(s.Stats.Happiness),
		keyLastInteraction: formatTime(s.LastInteraction),
		keyPrayerDay:       s.PrayerDay,
	}
	for name, n := range s.Rituals {
		kv[ritualPrefix+name] = strconv.Itoa(n)
	}
	for p, done := range s.Prayers {
		kv[prayerPrefix+string(p)] = strconv.FormatBool(done)
	}
	return kv
}

// unflatten decodes key/value pairs written by flatten.
func unflatten(kv map[string]string) (*pet.Snapshot, error) {
	for _, k := range requiredKeys {
		if _, ok := kv[k]; !ok {
			return nil, fmt.Errorf("snapshot missing %s", k)
		}
	}

	s := &pet.Snapshot{
		Rituals: pet.RitualCounts{},
		Prayers: pet.PrayerStatus{},
	}
	var err error
	for k, v := range kv {
		switch {
		case k == keyName:
			s.Profile.Name = v
		case k == keyEmoji:
			s.Profile.Emoji = v
		case k == keyAgeHours:
			s.Profile.AgeHours, err = strconv.Atoi(v)
		case k == keyLastDecay:
			s.Profile.LastDecay, err = parseTime(v)
		case k == keyHealth:
			s.Stats.Health, err = strconv.ParseFloat(v, 64)
		case k == keySpirituality:
			s.Stats.Spirituality, err = strconv.ParseFloat(v, 64)
		case k == keyEnergy:
			s.Stats.Energy, err = strconv.ParseFloat(v, 64)
		case k == keyHappiness:
			s.Stats.Happiness, err = strconv.ParseFloat(v, 64)
		case k == keyLastInteraction:
			s.LastInteraction, err = parseTime(v)
		case k == keyPrayerDay:
			s.PrayerDay = v
		case strings.HasPrefix(k, ritualPrefix):
			var n int
			n, err = strconv.Atoi(v)
			s.Rituals[strings.TrimPrefix(k, ritualPrefix)] = n
		case strings.HasPrefix(k, prayerPrefix):
			var p pet.Prayer
			if p, err = pet.ParsePrayer(strings.TrimPrefix(k, prayerPrefix)); err == nil {
				s.Prayers[p], err = strconv.ParseBool(v)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", k, err)
		}
	}
	return s, nil
}

// SaveSnapshot replaces the stored snapshot.
func (db *DB) SaveSnapshot(s *pet.Snapshot) error {
	now := time.Now().UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save snapshot: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM pet_state`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO pet_state (key, value, updated_at) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for k, v := range flatten(s) {
		if _, err := stmt.Exec(k, v, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil if none has been saved.
func (db *DB) LoadSnapshot() (*pet.Snapshot, error) {
	rows, err := db.Query(`SELECT key, value FROM pet_state`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if len(kv) == 0 {
		return nil, nil
	}
	return unflatten(kv)
}

// ClearSnapshot removes every stored snapshot key.
func (db *DB) ClearSnapshot() error {
	if _, err := db.Exec(`DELETE FROM pet_state`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
