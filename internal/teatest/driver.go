// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: it calls Update directly and runs the
// returned Cmds until the model goes quiet. Cmds that wait on timers (cursor
// blinks, spinner ticks) do not return within the Cmd timeout and are
// abandoned.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainSteps caps the number of Cmds run for a single input.
const MaxDrainSteps = 200

// DefaultCmdTimeout is how long a Cmd may run before it is abandoned. Stubs
// and in-memory database calls finish well inside it; a spinner tick waits
// ~100ms and a cursor blink ~530ms.
const DefaultCmdTimeout = 50 * time.Millisecond

// Driver feeds input to a tea.Model and runs the resulting Cmds.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// CmdTimeout bounds each Cmd execution.
	CmdTimeout time.Duration

	// Skipped counts Cmds abandoned after CmdTimeout.
	Skipped int

	// Quitting is set once a tea.QuitMsg has been seen. Further input is
	// dropped, as the real runtime would have exited.
	Quitting bool

	ignore []func(tea.Msg) bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout overrides DefaultCmdTimeout.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.CmdTimeout = timeout }
}

// WithIgnore drops messages for which fn returns true instead of passing
// them to Update.
func WithIgnore(fn func(tea.Msg) bool) Option {
	return func(d *Driver) { d.ignore = append(d.ignore, fn) }
}

// New returns a Driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{
		T:          t,
		Model:      model,
		CmdTimeout: DefaultCmdTimeout,
		ignore:     []func(tea.Msg) bool{isCursorBlink},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init Cmd.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init())
}

// Send passes msg to Update and runs the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd)
}

// PressKey sends a rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressKeyType sends a non-rune key such as tea.KeyCtrlT.
func (d *Driver) PressKeyType(kt tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: kt})
}

// PressEnter sends Enter.
func (d *Driver) PressEnter() { d.T.Helper(); d.PressKeyType(tea.KeyEnter) }

// PressEsc sends Escape.
func (d *Driver) PressEsc() { d.T.Helper(); d.PressKeyType(tea.KeyEsc) }

// PressCtrlC sends Ctrl+C.
func (d *Driver) PressCtrlC() { d.T.Helper(); d.PressKeyType(tea.KeyCtrlC) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// Resize sends a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// drain runs cmd and every Cmd it leads to, breadth first. Batches are
// flattened into the queue.
func (d *Driver) drain(cmd tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxDrainSteps {
			d.T.Logf("teatest: stopped after %d cmds", MaxDrainSteps)
			return
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil || d.Quitting {
			continue
		}

		msg, ok := run(next, d.CmdTimeout)
		if !ok {
			d.Skipped++
			continue
		}
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(msg)
			continue
		}
		if d.ignored(msg) {
			continue
		}

		var follow tea.Cmd
		d.Model, follow = d.Model.Update(msg)
		queue = append(queue, follow)
	}
}

func (d *Driver) ignored(msg tea.Msg) bool {
	for _, fn := range d.ignore {
		if fn(msg) {
			return true
		}
	}
	return false
}

// run executes cmd on its own goroutine. ok is false when it did not finish
// within timeout.
func run(cmd tea.Cmd, timeout time.Duration) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(timeout):
		return nil, false
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which chain into timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
