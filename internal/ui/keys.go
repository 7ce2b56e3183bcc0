package ui

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap holds the application-level bindings. They must not collide
// with printable keys since the combobox owns text entry.
type AppKeyMap struct {
	Help    key.Binding
	History key.Binding
	Quit    key.Binding
}

// DefaultAppKeyMap returns the default application bindings
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "selection history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// shortHelp combines combobox and application bindings for the footer
type shortHelp struct {
	bindings []key.Binding
}

func (s shortHelp) ShortHelp() []key.Binding  { return s.bindings }
func (s shortHelp) FullHelp() [][]key.Binding { return [][]key.Binding{s.bindings} }
