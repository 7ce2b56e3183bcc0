package combobox

// Action is a state change derived from a key or mouse event
type Action interface {
	Type() string
}

// NavigateAction moves the active row
type NavigateAction struct {
	Direction string // "next", "prev", "pagedown", "pageup", "first", "last"
}

func (a NavigateAction) Type() string { return "navigate" }

// ShowListAction re-opens a hidden list that still has rows,
// activating the first row (or the last one when Last is set)
type ShowListAction struct {
	Last bool
}

func (a ShowListAction) Type() string { return "show_list" }

// ShowAllAction fetches suggestions for the current text immediately,
// ignoring the minimum query length
type ShowAllAction struct{}

func (a ShowAllAction) Type() string { return "show_all" }

// CommitAction chooses a row (Index -1 means the active row)
type CommitAction struct {
	Index int
}

func (a CommitAction) Type() string { return "commit" }

// SubmitTextAction submits the raw input when no row is active
type SubmitTextAction struct{}

func (a SubmitTextAction) Type() string { return "submit_text" }

// AcceptAction copies the active row into the input without submitting
type AcceptAction struct{}

func (a AcceptAction) Type() string { return "accept" }

// ClearAction empties the input and drops the list
type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

// HoverAction activates the row under the pointer
type HoverAction struct {
	Index int
}

func (a HoverAction) Type() string { return "hover" }
