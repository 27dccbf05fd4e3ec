package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the list editor.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// List mutations.
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding

	// Persistence.
	Store    key.Binding
	Retrieve key.Binding

	// Input and confirmation.
	Submit  key.Binding
	Cancel  key.Binding
	Confirm key.Binding
	Decline key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "i"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "complete"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Store: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "store"),
	),
	Retrieve: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retrieve"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "done"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Decline: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// browseHelp lists the bindings shown in the footer while browsing.
func (keys KeyMap) browseHelp() []key.Binding {
	return []key.Binding{keys.Add, keys.Edit, keys.Toggle, keys.Delete, keys.Store, keys.Retrieve, keys.Quit}
}

// inputHelp lists the bindings shown in the footer while typing.
func (keys KeyMap) inputHelp() []key.Binding {
	return []key.Binding{keys.Submit, keys.Cancel}
}
