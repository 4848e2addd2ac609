package cli

import (
	"fmt"

	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/alexanderramin/planify/internal/theme"
	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the current colour theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := theme.PaletteFor(app.Theme.Applied())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s theme %s\n",
				formatter.StyleHeader.Render(p.Logo),
				formatter.Bold(string(p.Theme)),
				formatter.Dim("(toggle for "+p.ToggleLabel+")"))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := app.Theme.Toggle(cmd.Context())
			formatter.Use(theme.Active())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to %s theme.\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(string(next)))
			return nil
		},
	})

	return cmd
}
