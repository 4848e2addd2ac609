package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/planify/internal/cli"
	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/alexanderramin/planify/internal/config"
	"github.com/alexanderramin/planify/internal/db"
	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/export"
	"github.com/alexanderramin/planify/internal/formstate"
	"github.com/alexanderramin/planify/internal/planapi"
	"github.com/alexanderramin/planify/internal/repository"
	"github.com/alexanderramin/planify/internal/session"
	"github.com/alexanderramin/planify/internal/theme"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// The bare command starts the TUI on a terminal; logging to stderr would
	// draw over it.
	logOut, closeLog, err := openLog(cfg, interactive() && len(os.Args) == 1)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	prefRepo := repository.NewSQLitePreferenceRepo(database)
	formRepo := repository.NewSQLiteFormSessionRepo(database)

	if n, err := formstate.PruneExpired(ctx, formRepo, cfg.SessionTTL, time.Now()); err != nil {
		logger.Warn("pruning expired form sessions", "error", err)
	} else if n > 0 {
		logger.Info("pruned expired form sessions", "count", n)
	}

	// Apply the theme before anything is drawn.
	themes := theme.NewManager(prefRepo, theme.WithLogger(logger))
	formatter.Use(themes.Init(ctx))

	forms := formstate.NewStore(formRepo, cfg.SessionID, logger)

	var observer planapi.Observer = planapi.NoopObserver{}
	if cfg.LogCalls {
		observer = planapi.NewLogObserver(logOut)
	}
	client := planapi.NewClient(cfg.Endpoint, cfg.Timeout(), observer)

	def := domain.DefaultFormDefinition()
	controller := session.NewController(client,
		session.WithFormStore(forms),
		session.WithFormDefinition(def),
		session.WithPDFExporter(export.NewPDFWriter(export.DefaultLayout()), cfg.ExportDir),
		session.WithLogger(logger),
	)

	app := &cli.App{
		Session:       controller,
		Theme:         themes,
		Forms:         forms,
		Definition:    def,
		IsInteractive: interactive,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openLog returns the log destination: PLANIFY_LOG_FILE when set, else
// stderr, else nothing while the TUI owns the screen.
func openLog(cfg config.Config, tui bool) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if tui {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}
