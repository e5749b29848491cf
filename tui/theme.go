package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/status-im/coin-tracker/interfaces"
)

// Palette holds the colors for one theme mode
type Palette struct {
	Text        string
	Muted       string
	Accent      string
	Positive    string
	Negative    string
	Warning     string
	SelectionBg string
	Border      string
}

// Styles are the lipgloss styles derived from a Palette
type Styles struct {
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Positive  lipgloss.Style
	Negative  lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Selected  lipgloss.Style
	Favorite  lipgloss.Style
	Panel     lipgloss.Style
	StatusBar lipgloss.Style
}

var (
	darkPalette = Palette{
		Text:        "#E6EDF3",
		Muted:       "#8B949E",
		Accent:      "#58A6FF",
		Positive:    "#3FB950",
		Negative:    "#F85149",
		Warning:     "#D29922",
		SelectionBg: "#30363D",
		Border:      "#484F58",
	}

	lightPalette = Palette{
		Text:        "#1F2328",
		Muted:       "#656D76",
		Accent:      "#0969DA",
		Positive:    "#1A7F37",
		Negative:    "#CF222E",
		Warning:     "#9A6700",
		SelectionBg: "#D0D7DE",
		Border:      "#8C959F",
	}
)

// PaletteFor returns the palette of mode, dark for anything unknown
func PaletteFor(mode interfaces.ThemeMode) Palette {
	if mode == interfaces.ThemeModeLight {
		return lightPalette
	}
	return darkPalette
}

// Styles returns lipgloss styles for this palette.
func (p Palette) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),

		Positive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Positive)),

		Negative: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Negative)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Negative)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.SelectionBg)).
			Foreground(lipgloss.Color(p.Text)).
			Bold(true),

		Favorite: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Italic(true),
	}
}

// changeStyle picks the positive or negative style for a signed change
func (s Styles) changeStyle(v float64, ok bool) lipgloss.Style {
	switch {
	case !ok:
		return s.Muted
	case v < 0:
		return s.Negative
	default:
		return s.Positive
	}
}
