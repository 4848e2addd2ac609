package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planify/internal/db"
)

// SQLitePreferenceRepo implements PreferenceRepo using a SQLite database.
type SQLitePreferenceRepo struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLitePreferenceRepo creates a new SQLitePreferenceRepo.
func NewSQLitePreferenceRepo(conn db.DBTX) *SQLitePreferenceRepo {
	return &SQLitePreferenceRepo{db: conn, now: time.Now}
}

func (r *SQLitePreferenceRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("preference %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("scanning preference %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLitePreferenceRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, formatTimestamp(r.now()))
	if err != nil {
		return fmt.Errorf("upserting preference %q: %w", key, err)
	}
	return nil
}
