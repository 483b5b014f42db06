package tui

import "github.com/charmbracelet/bubbles/key"

// KeyBindings defines the keyboard shortcuts for the watch view.
type KeyBindings struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	ViewAll     key.Binding
	ViewReady   key.Binding
	ViewBlocked key.Binding
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		ViewAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all issues"),
		),
		ViewReady: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "ready"),
		),
		ViewBlocked: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "blocked"),
		),
	}
}
