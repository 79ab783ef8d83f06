package dashboard

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bubbletea key bindings. The raw loop uses the same keys
// as plain bytes.
type KeyMap struct {
	Quit   key.Binding
	Units  key.Binding
	Colors key.Binding
	Stats  key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the dashboard's bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Units: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "SI/binary units"),
		),
		Colors: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "colors"),
		),
		Stats: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "stats panel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Units, k.Colors, k.Stats, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Units, k.Colors, k.Stats},
		{k.Help, k.Quit},
	}
}
