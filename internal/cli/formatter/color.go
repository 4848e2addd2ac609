package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planify/internal/session"
	"github.com/alexanderramin/planify/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Colors of the active palette. Use swaps them when the theme changes.
var (
	ColorGreen  lipgloss.Color
	ColorYellow lipgloss.Color
	ColorRed    lipgloss.Color
	ColorBlue   lipgloss.Color
	ColorPurple lipgloss.Color
	ColorDim    lipgloss.Color
	ColorFg     lipgloss.Color
	ColorHeader lipgloss.Color
)

// Predefined lipgloss styles, rebuilt by Use.
var (
	StyleGreen  lipgloss.Style
	StyleYellow lipgloss.Style
	StyleRed    lipgloss.Style
	StyleBlue   lipgloss.Style
	StylePurple lipgloss.Style
	StyleDim    lipgloss.Style
	StyleFg     lipgloss.Style
	StyleHeader lipgloss.Style
	StyleBold   lipgloss.Style
)

func init() {
	Use(theme.Active())
}

// Use rebuilds the package colors and styles from p. It is not safe to call
// concurrently with rendering; the TUI calls it from its update loop.
func Use(p theme.Palette) {
	ColorGreen, ColorYellow, ColorRed = p.Green, p.Yellow, p.Red
	ColorBlue, ColorPurple = p.Blue, p.Purple
	ColorDim, ColorFg, ColorHeader = p.Dim, p.Fg, p.Header

	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
}

// StatusColor returns the style for a status line of the given kind.
func StatusColor(kind session.StatusKind) lipgloss.Style {
	switch kind {
	case session.StatusError:
		return StyleRed
	case session.StatusSuccess:
		return StyleGreen
	case session.StatusInfo:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusLine renders a status message with an indicator such as "✔ Saved".
func StatusLine(kind session.StatusKind, msg string) string {
	if msg == "" {
		return ""
	}
	switch kind {
	case session.StatusError:
		return StyleRed.Render("✖ " + msg)
	case session.StatusSuccess:
		return StyleGreen.Render("✔ " + msg)
	default:
		return StatusColor(kind).Render("● " + msg)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
