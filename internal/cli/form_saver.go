package cli

import (
	"context"
	"sync"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/formstate"
)

// formSaver serializes writes of the form snapshot. Bubble Tea runs commands
// concurrently, so each write carries a generation and writes older than
// the last one applied are dropped.
type formSaver struct {
	store *formstate.Store

	mu  sync.Mutex
	gen uint64
}

func newFormSaver(store *formstate.Store) *formSaver {
	return &formSaver{store: store}
}

func (s *formSaver) save(ctx context.Context, gen uint64, snap domain.FormSnapshot) error {
	if s == nil || s.store == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.gen {
		return nil
	}
	s.gen = gen
	return s.store.Persist(ctx, snap)
}

func (s *formSaver) reset(ctx context.Context, gen uint64) (domain.FormSnapshot, error) {
	if s == nil || s.store == nil {
		return domain.DefaultSnapshot(), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen > s.gen {
		s.gen = gen
	}
	return s.store.Reset(ctx)
}

func (s *formSaver) hydrate(ctx context.Context) formstate.Hydrated {
	if s == nil || s.store == nil {
		return formstate.Hydrated{Snapshot: domain.DefaultSnapshot()}
	}
	return s.store.Hydrate(ctx)
}
