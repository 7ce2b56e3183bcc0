package combobox

import "suggestbox/internal/domain"

// debounceMsg fires when the input has been quiet for the debounce interval
type debounceMsg struct {
	id    int
	gen   uint64
	query string
}

// resultsMsg carries the outcome of one fetch
type resultsMsg struct {
	id      int
	seq     uint64
	query   string
	results domain.Results
	err     error
}

// SelectedMsg is sent when a suggestion is committed with Enter or a click
type SelectedMsg struct {
	Suggestion domain.Suggestion
	Index      int
	Query      string
}

// SubmittedMsg is sent when Enter is pressed with no active suggestion
type SubmittedMsg struct {
	Text string
}
