package theme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/repository"
	"github.com/charmbracelet/lipgloss"
)

// Manager resolves, applies and persists the light/dark preference.
type Manager struct {
	prefs      repository.PreferenceRepo
	detectDark func() bool
	logger     *slog.Logger

	mu      sync.Mutex
	applied domain.Theme
}

// Option configures a Manager.
type Option func(*Manager)

// WithDarkDetector overrides system dark-mode detection.
func WithDarkDetector(f func() bool) Option {
	return func(m *Manager) {
		m.detectDark = f
	}
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a Manager. By default the system preference is the
// terminal background as reported by lipgloss.
func NewManager(prefs repository.PreferenceRepo, opts ...Option) *Manager {
	m := &Manager{
		prefs:      prefs,
		detectDark: lipgloss.HasDarkBackground,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InitialTheme resolves the starting theme: the persisted value, else the
// system dark preference, else light. Unknown stored values are ignored.
func (m *Manager) InitialTheme(ctx context.Context) domain.Theme {
	stored, err := m.prefs.Get(ctx, repository.PreferenceKeyTheme)
	switch {
	case err == nil && domain.Theme(stored).Valid():
		return domain.Theme(stored)
	case err == nil:
		m.logger.Warn("ignoring unknown stored theme", "value", stored)
	case !errors.Is(err, repository.ErrNotFound):
		m.logger.Warn("reading stored theme", "error", err)
	}

	if m.detectDark != nil && m.detectDark() {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

// Apply makes t the visible theme. Applying the same theme twice leaves the
// same state as applying it once.
func (m *Manager) Apply(t domain.Theme) Palette {
	if !t.Valid() {
		t = domain.ThemeLight
	}
	m.mu.Lock()
	m.applied = t
	m.mu.Unlock()

	p := PaletteFor(t)
	setActive(p)
	return p
}

// Applied returns the theme currently applied by this manager, or the empty
// theme before the first Apply.
func (m *Manager) Applied() domain.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied
}

// Init resolves the initial theme and applies it. Call once at startup,
// before the first frame is drawn.
func (m *Manager) Init(ctx context.Context) Palette {
	return m.Apply(m.InitialTheme(ctx))
}

// Toggle flips the applied theme, applies it and persists it. The new theme
// stays applied even when persisting fails; the error is returned so callers
// can surface it.
func (m *Manager) Toggle(ctx context.Context) (domain.Theme, error) {
	next := m.Applied().Flip()
	m.Apply(next)

	if err := m.prefs.Set(ctx, repository.PreferenceKeyTheme, string(next)); err != nil {
		m.logger.Warn("persisting theme", "theme", next, "error", err)
		return next, fmt.Errorf("saving theme: %w", err)
	}
	return next, nil
}
