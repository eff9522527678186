package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS analytics_events (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL,
		name        TEXT NOT NULL,
		attrs       TEXT NOT NULL DEFAULT '{}',
		recorded_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analytics_events_recorded ON analytics_events(recorded_at)`,
	`CREATE INDEX IF NOT EXISTS idx_analytics_events_name ON analytics_events(name)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// seq gives a stable tie-break for events recorded in the same instant
	`ALTER TABLE analytics_events ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_analytics_events_session ON analytics_events(session_id, seq)`,
}

// Migrate applies every schema statement. It is safe to run repeatedly.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// re-running an ALTER TABLE ADD COLUMN is expected
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
