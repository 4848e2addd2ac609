package cli

import (
	"github.com/alexanderramin/planify/internal/domain"
	"github.com/alexanderramin/planify/internal/formstate"
	"github.com/alexanderramin/planify/internal/session"
	"github.com/alexanderramin/planify/internal/theme"
	"github.com/spf13/cobra"
)

// App holds the components used by CLI commands and the TUI.
type App struct {
	Session    *session.Controller
	Theme      *theme.Manager
	Forms      *formstate.Store
	Definition domain.FormDefinition

	// IsInteractive reports whether stdin is a terminal. When nil the TUI
	// is never started.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "planify" command and registers all
// subcommands against the provided App. Run without a subcommand on a
// terminal, it starts the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planify",
		Short:         "Generate a personalised study plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app)
		},
	}

	root.AddCommand(
		newGenerateCmd(app),
		newThemeCmd(app),
		newFormCmd(app),
	)

	return root
}
