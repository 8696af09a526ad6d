package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings for the confirmation prompt.
type keyMap struct {
	Yes   key.Binding
	No    key.Binding
	Quit  key.Binding
	Enter key.Binding
	Left  key.Binding
	Right key.Binding
	Tab   key.Binding
}

var keys = keyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
	),
}
