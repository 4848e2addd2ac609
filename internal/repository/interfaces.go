package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// PreferenceKeyTheme stores the user's light/dark preference.
const PreferenceKeyTheme = "theme"

// PreferenceRepo stores origin-scoped key/value preferences that survive
// restarts.
type PreferenceRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// FormSession is the stored form snapshot for one terminal session. Payload
// is kept exactly as written so readers can detect corruption.
type FormSession struct {
	SessionID string
	Payload   string
	UpdatedAt time.Time
}

// FormSessionRepo stores session-scoped form snapshots.
type FormSessionRepo interface {
	Get(ctx context.Context, sessionID string) (*FormSession, error)
	Put(ctx context.Context, sessionID, payload string) error
	Delete(ctx context.Context, sessionID string) error
	// PruneBefore removes snapshots last written before cutoff and returns
	// how many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
