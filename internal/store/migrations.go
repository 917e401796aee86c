package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "pet_state: flat key/value snapshot of the simulation",
		SQL: `
CREATE TABLE pet_state (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "lives: one row per pet from reset to death",
		SQL: `
CREATE TABLE lives (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    emoji      TEXT,
    started_at INTEGER NOT NULL,
    ended_at   INTEGER,
    age_hours  INTEGER NOT NULL DEFAULT 0,
    status     TEXT NOT NULL DEFAULT 'alive' CHECK (status IN ('alive', 'ended'))
);

CREATE INDEX idx_lives_status     ON lives(status);
CREATE INDEX idx_lives_started_at ON lives(started_at DESC);
`,
	},
	{
		Version:     3,
		Description: "activities: journal of accepted actions",
		SQL: `
CREATE TABLE activities (
    id           INTEGER PRIMARY KEY,
    life_id      INTEGER,
    kind         TEXT NOT NULL CHECK (kind IN ('ritual', 'prayer', 'rest', 'study', 'reset')),
    detail       TEXT,
    health       REAL NOT NULL,
    spirituality REAL NOT NULL,
    energy       REAL NOT NULL,
    happiness    REAL NOT NULL,
    created_at   INTEGER NOT NULL,

    FOREIGN KEY (life_id) REFERENCES lives(id) ON DELETE SET NULL
);

CREATE INDEX idx_activities_life    ON activities(life_id);
CREATE INDEX idx_activities_created ON activities(created_at DESC);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
