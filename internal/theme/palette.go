package theme

import (
	"sync/atomic"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the full set of theme-dependent visual assets.
type Palette struct {
	Theme  domain.Theme
	Fg     lipgloss.Color
	Dim    lipgloss.Color
	Header lipgloss.Color
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	Blue   lipgloss.Color
	Purple lipgloss.Color

	// Logo is the banner variant drawn for this theme.
	Logo string
	// ToggleLabel names the theme a toggle switches to.
	ToggleLabel string
}

// Gruvbox-inspired palettes.
var (
	Dark = Palette{
		Theme:       domain.ThemeDark,
		Fg:          lipgloss.Color("#ebdbb2"),
		Dim:         lipgloss.Color("#928374"),
		Header:      lipgloss.Color("#fe8019"),
		Green:       lipgloss.Color("#8ec07c"),
		Yellow:      lipgloss.Color("#fabd2f"),
		Red:         lipgloss.Color("#fb4934"),
		Blue:        lipgloss.Color("#83a598"),
		Purple:      lipgloss.Color("#d3869b"),
		Logo:        "☾ PlanifyVerse",
		ToggleLabel: "Light Mode",
	}
	Light = Palette{
		Theme:       domain.ThemeLight,
		Fg:          lipgloss.Color("#3c3836"),
		Dim:         lipgloss.Color("#7c6f64"),
		Header:      lipgloss.Color("#af3a03"),
		Green:       lipgloss.Color("#79740e"),
		Yellow:      lipgloss.Color("#b57614"),
		Red:         lipgloss.Color("#9d0006"),
		Blue:        lipgloss.Color("#076678"),
		Purple:      lipgloss.Color("#8f3f71"),
		Logo:        "☀ PlanifyVerse",
		ToggleLabel: "Dark Mode",
	}
)

// PaletteFor returns the palette of t. Unknown themes use Light.
func PaletteFor(t domain.Theme) Palette {
	if t == domain.ThemeDark {
		return Dark
	}
	return Light
}

var active atomic.Pointer[Palette]

func init() {
	p := Light
	active.Store(&p)
}

// Active returns the palette most recently applied anywhere in the process.
func Active() Palette {
	return *active.Load()
}

func setActive(p Palette) {
	active.Store(&p)
}
