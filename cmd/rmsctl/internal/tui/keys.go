package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal UI.
type KeyMap struct {
	// Global, active while no text field has focus.
	Quit     key.Binding
	Jump     key.Binding // 1-9: navbar entry
	GoTo     key.Binding // open the path prompt
	Logout   key.Binding
	Refresh  key.Binding
	Interact key.Binding // focus the current view's form

	// Lists.
	Select  key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Cancel  key.Binding
	Approve key.Binding
	Reject  key.Binding
	Pending key.Binding // toggle the pending-only filter
	Search  key.Binding
	NextCat key.Binding
	PrevCat key.Binding

	// Forms and confirmations.
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Submit    key.Binding
	Back      key.Binding
	Confirm   key.Binding
	Deny      key.Binding

	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Jump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "navigate"),
	),
	GoTo: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "go to path"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log out"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Interact: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "edit form"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cancel booking"),
	),
	Approve: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "approve"),
	),
	Reject: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reject"),
	),
	Pending: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pending only"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextCat: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next category"),
	),
	PrevCat: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev category"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "prev field"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous option"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next option"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yes"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
