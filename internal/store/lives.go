package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Life is one pet from creation or reset until death or the next reset.
type Life struct {
	ID        int64
	Name      string
	Emoji     string
	StartedAt int64
	EndedAt   *int64
	AgeHours  int
	Status    string
}

// BeginLife ends any open life and opens a new one.
func (db *DB) BeginLife(name, emoji string, at time.Time) (*Life, error) {
	ms := at.UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin life: %w", err)
	}
	if _, err := tx.Exec(`
		UPDATE lives SET status = 'ended', ended_at = COALESCE(ended_at, ?)
		WHERE status = 'alive'
	`, ms); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("close open lives: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO lives (name, emoji, started_at, status)
		VALUES (?, ?, ?, 'alive')
	`, name, emoji, ms)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("insert life: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit life: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Life{
		ID:        id,
		Name:      name,
		Emoji:     emoji,
		StartedAt: ms,
		Status:    "alive",
	}, nil
}

// EndLife closes the current life, recording the age reached.
func (db *DB) EndLife(ageHours int, at time.Time) error {
	result, err := db.Exec(`
		UPDATE lives SET status = 'ended', ended_at = ?, age_hours = ?
		WHERE status = 'alive'
	`, at.UnixMilli(), ageHours)
	if err != nil {
		return fmt.Errorf("end life: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no open life to end")
	}
	return nil
}

// CurrentLife returns the open life, or nil if there is none.
func (db *DB) CurrentLife() (*Life, error) {
	var l Life
	err := db.QueryRow(`
		SELECT id, name, emoji, started_at, ended_at, age_hours, status
		FROM lives WHERE status = 'alive' ORDER BY started_at DESC LIMIT 1
	`).Scan(&l.ID, &l.Name, &l.Emoji, &l.StartedAt, &l.EndedAt, &l.AgeHours, &l.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current life: %w", err)
	}
	return &l, nil
}

// RecentLives returns lives ordered by started_at DESC.
func (db *DB) RecentLives(limit int) ([]Life, error) {
	rows, err := db.Query(`
		SELECT id, name, emoji, started_at, ended_at, age_hours, status
		FROM lives ORDER BY started_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent lives: %w", err)
	}
	defer rows.Close()

	var lives []Life
	for rows.Next() {
		var l Life
		if err := rows.Scan(&l.ID, &l.Name, &l.Emoji, &l.StartedAt, &l.EndedAt, &l.AgeHours, &l.Status); err != nil {
			return nil, fmt.Errorf("scan life: %w", err)
		}
		lives = append(lives, l)
	}
	return lives, rows.Err()
}
