package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Origin-scoped key/value preferences (theme).
	`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Session-scoped form snapshots. payload is the serialized snapshot and
	// is stored verbatim so a corrupted blob can be detected on read.
	`CREATE TABLE IF NOT EXISTS form_sessions (
		session_id TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_form_sessions_updated ON form_sessions(updated_at)`,
}
