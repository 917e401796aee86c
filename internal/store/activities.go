package store

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/lazypower/soulgatchi/internal/pet"
)

// maxDetailSize caps the stored detail text (ritual names, study topics).
const maxDetailSize = 256

// Activity is a journaled action.
type Activity struct {
	ID        int64
	LifeID    *int64
	Kind      string
	Detail    string
	Stats     pet.Stats
	CreatedAt int64
}

// AddActivity appends an action to the journal, attached to the open life.
func (db *DB) AddActivity(a pet.Activity) error {
	detail := truncateDetail(a.Detail)

	_, err := db.Exec(`
		INSERT INTO activities (life_id, kind, detail, health, spirituality, energy, happiness, created_at)
		VALUES ((SELECT id FROM lives WHERE status = 'alive' ORDER BY started_at DESC LIMIT 1), ?, ?, ?, ?, ?, ?, ?)
	`, a.Kind, detail, a.Stats.Health, a.Stats.Spirituality, a.Stats.Energy, a.Stats.Happiness, at(a.At))
	if err != nil {
		return fmt.Errorf("add activity: %w", err)
	}
	return nil
}

// truncateDetail cuts s to at most maxDetailSize bytes on a rune boundary.
func truncateDetail(s string) string {
	if len(s) <= maxDetailSize {
		return s
	}
	n := maxDetailSize
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// RecentActivities returns the most recent journal entries, newest first.
func (db *DB) RecentActivities(limit int) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT id, life_id, kind, detail, health, spirituality, energy, happiness, created_at
		FROM activities ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}
	defer rows.Close()

	var acts []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.LifeID, &a.Kind, &a.Detail,
			&a.Stats.Health, &a.Stats.Spirituality, &a.Stats.Energy, &a.Stats.Happiness, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

// CountActivities returns the number of journal entries for a life.
func (db *DB) CountActivities(lifeID int64) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM activities WHERE life_id = ?`, lifeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return count, nil
}

func at(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().UnixMilli()
	}
	return t.UnixMilli()
}
