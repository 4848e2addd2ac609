package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/planify/internal/domain"
)

var testSessionCounter atomic.Int64

// NewSessionID returns a unique session key for tests sharing one database.
func NewSessionID() string {
	return fmt.Sprintf("test-session-%d", testSessionCounter.Add(1))
}

// SnapshotOption mutates a test snapshot.
type SnapshotOption func(*domain.FormSnapshot)

func WithSubject(s string) SnapshotOption {
	return func(f *domain.FormSnapshot) {
		f.Subject = s
	}
}

func WithHours(h float64) SnapshotOption {
	return func(f *domain.FormSnapshot) {
		f.Time = h
	}
}

func WithDuration(v int, unit domain.DurationUnit) SnapshotOption {
	return func(f *domain.FormSnapshot) {
		f.DurationValue = v
		f.DurationUnit = unit
	}
}

func WithPlanType(p domain.PlanType) SnapshotOption {
	return func(f *domain.FormSnapshot) {
		f.PlanType = p
	}
}

func WithPace(p domain.Pace) SnapshotOption {
	return func(f *domain.FormSnapshot) {
		f.Pace = p
	}
}

func WithFlags(includeRevision, weekendSessions bool) SnapshotOption {
	return func(f *domain.FormSnapshot) {
		f.IncludeRevision = includeRevision
		f.WeekendSessions = weekendSessions
	}
}

// NewTestSnapshot returns a snapshot that passes every validation gate.
func NewTestSnapshot(opts ...SnapshotOption) domain.FormSnapshot {
	s := domain.DefaultSnapshot()
	s.Subject = "Organic Chemistry"
	s.Goal = "Score 90% on the midterm"
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
