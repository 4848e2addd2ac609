// Package formstate persists the study-plan form across restarts within a
// terminal session.
package formstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/repository"
)

// storedSnapshot mirrors domain.FormSnapshot with optional fields so a
// partially written blob falls back to defaults field by field.
type storedSnapshot struct {
	Subject         *string  `json:"subject"`
	Time            *float64 `json:"time"`
	DurationValue   *int     `json:"durationValue"`
	DurationUnit    *string  `json:"durationUnit"`
	Goal            *string  `json:"goal"`
	PlanType        *string  `json:"planType"`
	Pace            *string  `json:"pace"`
	IncludeRevision *bool    `json:"includeRevision"`
	WeekendSessions *bool    `json:"weekendSessions"`
}

func (s storedSnapshot) resolve() domain.FormSnapshot {
	def := domain.DefaultSnapshot()
	return domain.FormSnapshot{
		Subject:         domain.StrFromPtrWithDefault(def.Subject, s.Subject),
		Time:            domain.Float64FromPtrWithDefault(def.Time, s.Time),
		DurationValue:   domain.IntFromPtrWithDefault(def.DurationValue, s.DurationValue),
		DurationUnit:    domain.DurationUnit(domain.StrFromPtrWithDefault(string(def.DurationUnit), s.DurationUnit)),
		Goal:            domain.StrFromPtrWithDefault(def.Goal, s.Goal),
		PlanType:        domain.PlanType(domain.StrFromPtrWithDefault(string(def.PlanType), s.PlanType)),
		Pace:            domain.Pace(domain.StrFromPtrWithDefault(string(def.Pace), s.Pace)),
		IncludeRevision: domain.BoolFromPtrWithDefault(def.IncludeRevision, s.IncludeRevision),
		WeekendSessions: domain.BoolFromPtrWithDefault(def.WeekendSessions, s.WeekendSessions),
	}
}

// Hydrated is the result of reading the stored snapshot.
type Hydrated struct {
	Snapshot domain.FormSnapshot
	// Found is true when a stored snapshot existed and was applied.
	Found bool
	// Discarded is true when a stored snapshot was unreadable and removed.
	Discarded bool
}

// Store persists the form snapshot of one session.
type Store struct {
	repo      repository.FormSessionRepo
	sessionID string
	logger    *slog.Logger
}

// NewStore creates a Store bound to sessionID. A nil logger discards logs.
func NewStore(repo repository.FormSessionRepo, sessionID string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		repo:      repo,
		sessionID: sessionID,
		logger:    logger.With("session_id", sessionID),
	}
}

// SessionID returns the session this store is bound to.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Persist captures every field of snap. It is called on each field change.
func (s *Store) Persist(ctx context.Context, snap domain.FormSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding form snapshot: %w", err)
	}
	if err := s.repo.Put(ctx, s.sessionID, string(data)); err != nil {
		return fmt.Errorf("saving form snapshot: %w", err)
	}
	return nil
}

// Hydrate reads the stored snapshot. Missing fields take their defaults. A
// snapshot that fails to parse is deleted and defaults are returned; this is
// logged but never reported as an error.
func (s *Store) Hydrate(ctx context.Context) Hydrated {
	row, err := s.repo.Get(ctx, s.sessionID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("reading form snapshot", "error", err)
		}
		return Hydrated{Snapshot: domain.DefaultSnapshot()}
	}

	var stored storedSnapshot
	if err := json.Unmarshal([]byte(row.Payload), &stored); err != nil {
		s.logger.Warn("discarding corrupted form snapshot", "error", err)
		if delErr := s.repo.Delete(ctx, s.sessionID); delErr != nil {
			s.logger.Warn("deleting corrupted form snapshot", "error", delErr)
		}
		return Hydrated{Snapshot: domain.DefaultSnapshot(), Discarded: true}
	}

	return Hydrated{Snapshot: stored.resolve(), Found: true}
}

// Reset clears the stored snapshot and returns the field defaults.
func (s *Store) Reset(ctx context.Context) (domain.FormSnapshot, error) {
	if err := s.repo.Delete(ctx, s.sessionID); err != nil {
		return domain.DefaultSnapshot(), fmt.Errorf("clearing form snapshot: %w", err)
	}
	return domain.DefaultSnapshot(), nil
}

// PruneExpired removes snapshots of sessions idle for longer than ttl.
func PruneExpired(ctx context.Context, repo repository.FormSessionRepo, ttl time.Duration, now time.Time) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}
	return repo.PruneBefore(ctx, now.Add(-ttl))
}
