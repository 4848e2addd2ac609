package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/planify/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app, sets the terminal size and
// drains Init(). Controller results come back through command return values
// rather than a session renderer.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(context.Background(), app, false)
	d := teatest.New(t, m, teatest.WithSize(100, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// Screen returns the active screen.
func (d *TestDriver) Screen() ViewID {
	return d.appModel().screen
}

// Fields returns the form-bound values. Writes through the pointer behave
// like edits the form made.
func (d *TestDriver) Fields() *formFields {
	return d.appModel().fields
}

// SetScreen switches screens without going through the form.
func (d *TestDriver) SetScreen(v ViewID) {
	m := d.appModel()
	m.screen = v
	d.Model = m
}
