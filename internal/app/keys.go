package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keyboard bindings. Plain characters belong to
// the active section's input field, so global actions use tab and ctrl
// chords.
type KeyMap struct {
	Quit        key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Region      key.Binding
	Theme       key.Binding
	MarkRead    key.Binding
	Submit      key.Binding
	Detail      key.Binding
	PayerFilter key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Region: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "cycle region"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "mark updates read"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search / submit"),
		),
		Detail: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "drug detail"),
		),
		PayerFilter: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "cycle payer filter"),
		),
	}
}
