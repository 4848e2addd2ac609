package cli

import (
	"context"

	"github.com/alexanderramin/planify/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// runTUI runs the interactive form until the user quits. The session
// controller pushes every transition into the program, including hint
// changes fired by its timers.
func runTUI(ctx context.Context, app *App) error {
	m := newAppModel(ctx, app, true)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	app.Session.SetRenderer(session.RendererFunc(func(s session.Model) {
		p.Send(sessionMsg{model: s})
	}))
	defer app.Session.SetRenderer(nil)

	_, err := p.Run()
	return err
}
