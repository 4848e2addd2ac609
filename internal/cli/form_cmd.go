package cli

import (
	"fmt"

	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFormCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Inspect or reset the form saved for this terminal session",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the saved form values",
			RunE: func(cmd *cobra.Command, args []string) error {
				snap := loadSnapshot(cmd, app)
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshot(snap))
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Clear the saved form and restore defaults",
			RunE: func(cmd *cobra.Command, args []string) error {
				if app.Forms == nil {
					return nil
				}
				if _, err := app.Forms.Reset(cmd.Context()); err != nil {
					return fmt.Errorf("resetting form: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Form reset to defaults.\n", formatter.StyleGreen.Render("✔"))
				return nil
			},
		},
	)

	return cmd
}
