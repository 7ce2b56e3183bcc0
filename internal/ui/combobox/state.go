package combobox

// State is the interaction state of the suggestion list.
//
// activeIndex is always in [-1, resultsCount-1]; -1 means no row is active
// and the input itself has focus. offset is the first row of the visible
// window when the list is longer than maxVisible.
type State struct {
	activeIndex      int
	resultsCount     int
	shown            bool
	autocompleteMode bool
	autoSelectFirst  bool

	offset     int
	maxVisible int
}

// NewState creates an empty, hidden state
func NewState(autoSelectFirst bool, maxVisible int) State {
	if maxVisible < 1 {
		maxVisible = 1
	}
	return State{
		activeIndex:     -1,
		autoSelectFirst: autoSelectFirst,
		maxVisible:      maxVisible,
	}
}

func (s State) ActiveIndex() int       { return s.activeIndex }
func (s State) ResultsCount() int      { return s.resultsCount }
func (s State) Shown() bool            { return s.shown }
func (s State) AutocompleteMode() bool { return s.autocompleteMode }
func (s State) AutoSelectFirst() bool  { return s.autoSelectFirst }
func (s State) Offset() int            { return s.offset }
func (s State) MaxVisible() int        { return s.maxVisible }

// SetResults replaces the list with count rows.
// The list is shown only if there is something to show and the input is focused.
func (s *State) SetResults(count int, autocomplete bool, focused bool) {
	if count < 0 {
		count = 0
	}
	s.resultsCount = count
	s.autocompleteMode = autocomplete
	s.offset = 0
	if s.autoSelectFirst && count > 0 {
		s.activeIndex = 0
	} else {
		s.activeIndex = -1
	}
	s.shown = count > 0 && focused
}

// Clear drops all rows and hides the list
func (s *State) Clear() {
	s.resultsCount = 0
	s.activeIndex = -1
	s.offset = 0
	s.shown = false
	s.autocompleteMode = false
}

// Show displays the list if it has rows. Reports whether it is now shown.
func (s *State) Show() bool {
	if s.resultsCount == 0 {
		s.shown = false
		return false
	}
	s.shown = true
	return true
}

// Hide hides the list without dropping rows
func (s *State) Hide() {
	s.shown = false
}

// Next moves the active row down, wrapping.
// Without autoSelectFirst the wrap passes through -1 (the input row).
func (s *State) Next() {
	if s.resultsCount == 0 {
		return
	}
	switch {
	case s.activeIndex == s.resultsCount-1 && !s.autoSelectFirst:
		s.activeIndex = -1
	case s.activeIndex == s.resultsCount-1:
		s.activeIndex = 0
	default:
		s.activeIndex++
	}
	s.ensureActiveVisible()
}

// Prev moves the active row up, wrapping
func (s *State) Prev() {
	if s.resultsCount == 0 {
		return
	}
	switch {
	case s.activeIndex == -1:
		s.activeIndex = s.resultsCount - 1
	case s.activeIndex == 0 && s.autoSelectFirst:
		s.activeIndex = s.resultsCount - 1
	default:
		s.activeIndex--
	}
	s.ensureActiveVisible()
}

// PageDown moves a visible page down, clamping at the last row
func (s *State) PageDown() {
	if s.resultsCount == 0 {
		return
	}
	s.SetActive(min(s.activeIndex+s.maxVisible, s.resultsCount-1))
}

// PageUp moves a visible page up, clamping at the first row
func (s *State) PageUp() {
	if s.resultsCount == 0 {
		return
	}
	s.SetActive(max(s.activeIndex-s.maxVisible, 0))
}

// First activates the first row
func (s *State) First() {
	s.SetActive(0)
}

// Last activates the last row
func (s *State) Last() {
	s.SetActive(s.resultsCount - 1)
}

// SetActive activates row i; -1 returns to the input.
// Out of range values are ignored. Reports whether the index was accepted.
func (s *State) SetActive(i int) bool {
	if i < -1 || i >= s.resultsCount {
		return false
	}
	s.activeIndex = i
	s.ensureActiveVisible()
	return true
}

// VisibleRange returns the half-open row range currently in the window
func (s State) VisibleRange() (int, int) {
	end := s.offset + s.maxVisible
	if end > s.resultsCount {
		end = s.resultsCount
	}
	return s.offset, end
}

// RowAt maps a window line to a row index, or -1 when outside the list
func (s State) RowAt(line int) int {
	start, end := s.VisibleRange()
	if line < 0 || start+line >= end {
		return -1
	}
	return start + line
}

// ensureActiveVisible adjusts the window offset to keep the active row visible
func (s *State) ensureActiveVisible() {
	if s.activeIndex >= 0 {
		if s.activeIndex < s.offset {
			s.offset = s.activeIndex
		} else if s.activeIndex >= s.offset+s.maxVisible {
			s.offset = s.activeIndex - s.maxVisible + 1
		}
	}

	maxOffset := s.resultsCount - s.maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	if s.offset < 0 {
		s.offset = 0
	}
}
