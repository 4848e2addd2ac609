package cli

import (
	"strings"

	"github.com/alexanderramin/planify/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each screen of the TUI.
type ViewID int

const (
	ViewForm ViewID = iota
	ViewResult
)

func (v ViewID) String() string {
	if v == ViewForm {
		return "form"
	}
	return "result"
}

type keyMap struct {
	ForceQuit key.Binding
	Theme     key.Binding
	Reset     key.Binding
	Quit      key.Binding
	Copy      key.Binding
	PDF       key.Binding
	Edit      key.Binding
	Back      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset form")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		PDF:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pdf")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit form")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to plan")),
	}
}

func planViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// renderHelp renders key hints as "c copy · p pdf".
func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, formatter.StyleFg.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · "))
}

// isScrollKey reports whether msg should scroll the plan viewport.
func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyCtrlU, tea.KeyCtrlD, tea.KeySpace:
		return true
	}
	s := msg.String()
	return s == "j" || s == "k"
}
