package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// recorder appends every rune it sees and echoes "!" through a Cmd.
type recorder struct {
	typed  string
	echoes int
	width  int
}

func (r recorder) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (r recorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
	case echoMsg:
		r.echoes++
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return r, tea.Quit
		case tea.KeyCtrlT:
			return r, tea.Batch(
				func() tea.Msg { return echoMsg("a") },
				func() tea.Msg { return echoMsg("b") },
			)
		case tea.KeyCtrlS:
			return r, func() tea.Msg {
				time.Sleep(time.Second)
				return echoMsg("slow")
			}
		}
		r.typed += string(msg.Runes)
	}
	return r, nil
}

func (r recorder) View() string { return r.typed }

func TestDriver_TypeAndView(t *testing.T) {
	d := New(t, recorder{}, WithSize(80, 24))
	d.DrainInit()

	d.Type("abc")

	assert.Equal(t, "abc", d.View())
	assert.Equal(t, 80, d.Model.(recorder).width)
	assert.Equal(t, 1, d.Model.(recorder).echoes)
}

func TestDriver_DrainsBatches(t *testing.T) {
	d := New(t, recorder{})
	d.PressKeyType(tea.KeyCtrlT)
	assert.Equal(t, 2, d.Model.(recorder).echoes)
}

func TestDriver_SkipsSlowCmds(t *testing.T) {
	d := New(t, recorder{})
	d.PressKeyType(tea.KeyCtrlS)
	assert.Equal(t, 0, d.Model.(recorder).echoes)
	assert.Equal(t, 1, d.Skipped)
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, recorder{})
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d.Type("x")
	assert.Empty(t, d.View())
}

func TestDriver_Resize(t *testing.T) {
	d := New(t, recorder{})
	d.Resize(120, 40)
	assert.Equal(t, 120, d.Model.(recorder).width)
}

func TestDriver_IgnoreDropsMessages(t *testing.T) {
	d := New(t, recorder{}, WithIgnore(func(msg tea.Msg) bool {
		return msg == echoMsg("init")
	}))
	d.DrainInit()
	assert.Equal(t, 0, d.Model.(recorder).echoes)

	d.PressKeyType(tea.KeyCtrlT)
	assert.Equal(t, 2, d.Model.(recorder).echoes)
}

func TestDriver_CmdTimeoutOption(t *testing.T) {
	d := New(t, recorder{}, WithCmdTimeout(2*time.Second))
	d.PressKeyType(tea.KeyCtrlS)
	assert.Equal(t, 1, d.Model.(recorder).echoes)
	assert.Zero(t, d.Skipped)
}
