package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit key.Binding
	Back key.Binding

	// List
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Favorite key.Binding
	Refresh  key.Binding
	Search   key.Binding
	Settings key.Binding

	// Detail
	TimeFrame key.Binding

	// Settings
	ToggleTheme key.Binding
	ClearCache  key.Binding
}

// timeFrameKeys maps a key to a coin_detail time frame label
var timeFrameKeys = map[string]string{
	"H": "H",
	"D": "D",
	"W": "W",
	"M": "M",
	"6": "6M",
	"Y": "Y",
	"A": "All",
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),

		TimeFrame: key.NewBinding(
			key.WithKeys("H", "D", "W", "M", "6", "Y", "A"),
			key.WithHelp("H/D/W/M/6/Y/A", "time frame"),
		),

		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		ClearCache: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear local data"),
		),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Favorite, k.Refresh, k.Search, k.Settings, k.Quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.TimeFrame, k.Favorite, k.Refresh, k.Back, k.Quit}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.ToggleTheme, k.ClearCache, k.Back, k.Quit}
}
