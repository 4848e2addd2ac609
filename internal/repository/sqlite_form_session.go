package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planify/internal/db"
)

// SQLiteFormSessionRepo implements FormSessionRepo using a SQLite database.
type SQLiteFormSessionRepo struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteFormSessionRepo creates a new SQLiteFormSessionRepo.
func NewSQLiteFormSessionRepo(conn db.DBTX) *SQLiteFormSessionRepo {
	return &SQLiteFormSessionRepo{db: conn, now: time.Now}
}

func (r *SQLiteFormSessionRepo) Get(ctx context.Context, sessionID string) (*FormSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT session_id, payload, updated_at FROM form_sessions WHERE session_id = ?`, sessionID)

	var (
		fs      FormSession
		updated sql.NullString
	)
	if err := row.Scan(&fs.SessionID, &fs.Payload, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("form session %q: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning form session: %w", err)
	}
	fs.UpdatedAt = parseTimestamp(updated)
	return &fs, nil
}

func (r *SQLiteFormSessionRepo) Put(ctx context.Context, sessionID, payload string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO form_sessions (session_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		sessionID, payload, formatTimestamp(r.now()))
	if err != nil {
		return fmt.Errorf("upserting form session: %w", err)
	}
	return nil
}

func (r *SQLiteFormSessionRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM form_sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("deleting form session: %w", err)
	}
	return nil
}

func (r *SQLiteFormSessionRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM form_sessions WHERE updated_at < ?`, formatTimestamp(cutoff))
	if err != nil {
		return 0, fmt.Errorf("pruning form sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned form sessions: %w", err)
	}
	return n, nil
}
