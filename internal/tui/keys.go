package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	Dark   key.Binding
	Light  key.Binding
	Toggle key.Binding

	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dark, k.Light, k.Toggle},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark"),
		),
		Light: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "light"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t/space", "toggle"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
