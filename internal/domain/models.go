package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DisplayMode is the display-mode tag a suggestion source attaches to a result set
type DisplayMode string

const (
	// ModeList shows suggestions in the list only; the input keeps the typed text
	ModeList DisplayMode = "list"
	// ModeAutocomplete mirrors the active suggestion into the input while navigating
	ModeAutocomplete DisplayMode = "autocomplete"
)

// IsAutocomplete reports whether the mode enables inline completion
func (m DisplayMode) IsAutocomplete() bool {
	return m == ModeAutocomplete
}

// ItemID is the opaque id of the source item behind a suggestion.
// On the wire it may be a JSON string or number.
type ItemID string

// UnmarshalJSON accepts both string and numeric ids
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id must be a string or number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// Suggestion is a single entry of the suggestion list
type Suggestion struct {
	Text string `json:"text" yaml:"text"`
	ID   ItemID `json:"id,omitempty" yaml:"id,omitempty"`
}

// Results is an ordered suggestion list plus its display mode
type Results struct {
	Query       string
	Suggestions []Suggestion
	Mode        DisplayMode
}

// Len returns the number of suggestions
func (r Results) Len() int {
	return len(r.Suggestions)
}

// Truncate caps the suggestion list at max entries (max <= 0 means no cap)
func (r Results) Truncate(max int) Results {
	if max > 0 && len(r.Suggestions) > max {
		r.Suggestions = r.Suggestions[:max]
	}
	return r
}
