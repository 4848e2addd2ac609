package cli

import (
	"bytes"
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/export"
	"github.com/alexanderramin/planify/internal/formstate"
	"github.com/alexanderramin/planify/internal/planapi"
	"github.com/alexanderramin/planify/internal/repository"
	"github.com/alexanderramin/planify/internal/session"
	"github.com/alexanderramin/planify/internal/testutil"
	"github.com/alexanderramin/planify/internal/theme"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// stubGenerator answers with plan or err. When release is set, each call
// blocks until it is closed.
type stubGenerator struct {
	mu      sync.Mutex
	plan    string
	err     error
	release chan struct{}
	calls   int
	last    domain.FormSnapshot
}

func (s *stubGenerator) Generate(ctx context.Context, snap domain.FormSnapshot) (*planapi.GenerateResponse, error) {
	s.mu.Lock()
	s.calls++
	s.last = snap
	plan, err, release := s.plan, s.err, s.release
	s.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &planapi.GenerateResponse{Plan: plan, RequestID: "req-test"}, nil
}

func (s *stubGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubGenerator) Last() domain.FormSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

type fakeClipboard struct {
	mu   sync.Mutex
	text string
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	return nil
}

func (f *fakeClipboard) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// testEnv bundles an App with the fakes behind it.
type testEnv struct {
	App       *App
	Gen       *stubGenerator
	Clipboard *fakeClipboard
	Prefs     *repository.SQLitePreferenceRepo
	Store     *formstate.Store
	ExportDir string
}

func newTestEnv(t *testing.T, gen *stubGenerator) *testEnv {
	t.Helper()
	ctx := context.Background()

	conn := testutil.NewTestDB(t)
	prefs := repository.NewSQLitePreferenceRepo(conn)
	store := formstate.NewStore(repository.NewSQLiteFormSessionRepo(conn), testutil.NewSessionID(), nil)

	mgr := theme.NewManager(prefs, theme.WithDarkDetector(func() bool { return false }))
	formatter.Use(mgr.Init(ctx))
	t.Cleanup(func() { formatter.Use(mgr.Apply(domain.ThemeLight)) })

	clip := &fakeClipboard{}
	dir := t.TempDir()
	def := domain.DefaultFormDefinition()
	ctl := session.NewController(gen,
		session.WithFormStore(store),
		session.WithFormDefinition(def),
		session.WithClipboard(clip),
		session.WithPDFExporter(export.NewPDFWriter(export.DefaultLayout()), dir))

	return &testEnv{
		App: &App{
			Session:    ctl,
			Theme:      mgr,
			Forms:      store,
			Definition: def,
		},
		Gen:       gen,
		Clipboard: clip,
		Prefs:     prefs,
		Store:     store,
		ExportDir: dir,
	}
}

// runCmd executes the root command with args and returns stdout and stderr.
func runCmd(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(out.String()), stripANSI(errOut.String()), err
}
