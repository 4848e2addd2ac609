package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderFields renders label/value pairs with the labels padded to a common
// visible width.
func RenderFields(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		if w := lipgloss.Width(r[0]); w > width {
			width = w
		}
	}

	const gap = 2

	var b strings.Builder
	for _, r := range rows {
		pad := width - lipgloss.Width(r[0]) + gap
		b.WriteString("  ")
		b.WriteString(StyleDim.Render(r[0]))
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	return b.String()
}
