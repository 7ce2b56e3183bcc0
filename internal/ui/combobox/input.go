package combobox

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyActions maps a key to combobox actions.
// An empty result means the key belongs to the text input.
func (m Model) keyActions(msg tea.KeyMsg) []Action {
	shown := m.state.Shown()
	active := m.state.ActiveIndex()

	switch {
	case key.Matches(msg, m.keys.Clear):
		return []Action{ClearAction{}}

	case key.Matches(msg, m.keys.Commit):
		if shown && active >= 0 {
			return []Action{CommitAction{Index: -1}}
		}
		return []Action{SubmitTextAction{}}

	case key.Matches(msg, m.keys.Next):
		if !shown {
			return m.openActions(false)
		}
		return []Action{NavigateAction{Direction: "next"}}

	case key.Matches(msg, m.keys.Prev):
		if !shown {
			return m.openActions(true)
		}
		return []Action{NavigateAction{Direction: "prev"}}

	case key.Matches(msg, m.keys.Accept):
		if shown && m.state.AutocompleteMode() && active >= 0 {
			return []Action{AcceptAction{}}
		}
		return nil
	}

	// Paging keys only apply while the list is open; otherwise they move the cursor
	if !shown {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.PageDown):
		return []Action{NavigateAction{Direction: "pagedown"}}
	case key.Matches(msg, m.keys.PageUp):
		return []Action{NavigateAction{Direction: "pageup"}}
	case key.Matches(msg, m.keys.First):
		return []Action{NavigateAction{Direction: "first"}}
	case key.Matches(msg, m.keys.Last):
		return []Action{NavigateAction{Direction: "last"}}
	}
	return nil
}

// openActions opens a hidden list from Down or Up: rows already fetched
// are shown again, otherwise every option for the current text is fetched
func (m Model) openActions(last bool) []Action {
	if m.state.ResultsCount() > 0 {
		return []Action{ShowListAction{Last: last}}
	}
	if m.pending {
		return nil
	}
	return []Action{ShowAllAction{}}
}

// mouseActions maps pointer events over the list to actions.
// The list starts on the line below the input.
func (m Model) mouseActions(msg tea.MouseMsg) []Action {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return []Action{NavigateAction{Direction: "prev"}}
	case tea.MouseButtonWheelDown:
		return []Action{NavigateAction{Direction: "next"}}
	}

	if msg.X < m.originX || msg.X >= m.originX+m.width {
		return nil
	}
	row := m.state.RowAt(msg.Y - m.originY - 1)
	if row < 0 {
		return nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		return []Action{HoverAction{Index: row}}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return []Action{HoverAction{Index: row}, CommitAction{Index: row}}
	}
	return nil
}
