// Package combobox implements an autocomplete combobox: a text input paired
// with a suggestion list that is fetched from a source as the user types.
package combobox

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"suggestbox/internal/domain"
	"suggestbox/internal/eventbus"
	"suggestbox/internal/source"
)

// DefaultDebounce is the quiet period before a query is sent
const DefaultDebounce = 250 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Options configures a combobox
type Options struct {
	Placeholder     string
	Prompt          string
	Debounce        time.Duration
	MinQueryLength  int
	MaxResults      int
	MaxVisible      int
	AutoSelectFirst bool
	Width           int
	// Bus receives query/selection events when set
	Bus eventbus.EventBus
}

// Model is the combobox component
type Model struct {
	id     int
	opts   Options
	source source.Source
	bus    eventbus.EventBus

	input   textinput.Model
	spinner spinner.Model
	state   State
	keys    KeyMap
	styles  *Styles

	results  []domain.Suggestion
	query    string // text as typed, restored when navigation returns to the input
	selected *domain.Suggestion

	gen     uint64 // bumped on every input change
	seq     uint64 // sequence of the latest issued fetch
	pending bool
	cancel  context.CancelFunc

	focused bool
	width   int
	originX int
	originY int
}

// New creates a combobox backed by src
func New(src source.Source, opts Options) Model {
	if opts.MaxVisible < 1 {
		opts.MaxVisible = 8
	}
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = 1
	}
	if opts.Width <= 0 {
		opts.Width = 60
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		id:      nextID(),
		opts:    opts,
		source:  src,
		bus:     opts.Bus,
		input:   ti,
		spinner: sp,
		state:   NewState(opts.AutoSelectFirst, opts.MaxVisible),
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		width:   opts.Width,
	}
	m.spinner.Style = m.styles.Spinner
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Focus focuses the input and re-opens the list if it has rows
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	if m.state.ResultsCount() > 0 && m.selected == nil {
		m.state.Show()
	}
	return m.input.Focus()
}

// Blur removes focus and hides the list
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
	m.state.Hide()
}

// Focused reports whether the combobox has focus
func (m Model) Focused() bool { return m.focused }

// Value returns the current input text
func (m Model) Value() string { return m.input.Value() }

// SetValue replaces the input text without fetching suggestions
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.query = s
	m.selected = nil
	m.gen++
	m.invalidateFetch()
	m.clearResults()
}

// Selected returns the last committed suggestion, if any
func (m Model) Selected() (domain.Suggestion, bool) {
	if m.selected == nil {
		return domain.Suggestion{}, false
	}
	return *m.selected, true
}

// Results returns the suggestions currently backing the list
func (m Model) Results() []domain.Suggestion { return m.results }

// State returns a copy of the interaction state
func (m Model) State() State { return m.state }

// Pending reports whether a fetch is in flight
func (m Model) Pending() bool { return m.pending }

// KeyMap returns the key bindings, for help rendering
func (m Model) KeyMap() KeyMap { return m.keys }

// SetWidth sets the render width
func (m *Model) SetWidth(w int) {
	if w > 0 {
		m.width = w
	}
}

// SetOrigin tells the combobox where its first line is drawn so that
// mouse events can be mapped to rows
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Update implements the combobox state machine
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.id || msg.gen != m.gen {
			return m, nil
		}
		return m, m.fetch(msg.query)

	case resultsMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.seq != m.seq {
			log.Printf("Dropping stale suggestions for %q (seq %d, latest %d)", msg.query, msg.seq, m.seq)
			return m, nil
		}
		m.pending = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if msg.err != nil {
			log.Printf("Suggestion fetch for %q failed: %v", msg.query, msg.err)
			m.publish(domain.FetchFailedEvent{Query: msg.query, Err: msg.err})
			m.applyResults(domain.Results{Query: msg.query})
			return m, nil
		}
		m.applyResults(msg.results)
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if actions := m.keyActions(msg); len(actions) > 0 {
			return m.apply(actions)
		}
		return m.updateInput(msg)

	case tea.MouseMsg:
		if !m.focused || !m.state.Shown() {
			return m, nil
		}
		return m.apply(m.mouseActions(msg))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateInput forwards a key to the text input and reacts to edits
func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.inputChanged())
}

// inputChanged schedules a debounced fetch for the new text
func (m *Model) inputChanged() tea.Cmd {
	m.selected = nil
	m.query = m.input.Value()
	m.gen++

	q := strings.TrimSpace(m.query)
	if utf8.RuneCountInString(q) < m.opts.MinQueryLength {
		m.invalidateFetch()
		m.clearResults()
		return nil
	}

	id, gen, query := m.id, m.gen, m.query
	if m.opts.Debounce <= 0 {
		return func() tea.Msg { return debounceMsg{id: id, gen: gen, query: query} }
	}
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, gen: gen, query: query}
	})
}

// fetch issues a query, cancelling the one still in flight
func (m *Model) fetch(query string) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.seq++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.pending = true

	m.publish(domain.QueryIssuedEvent{Query: query, Seq: m.seq})

	src, id, seq := m.source, m.id, m.seq
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := src.Suggest(ctx, query)
		return resultsMsg{id: id, seq: seq, query: query, results: res, err: err}
	})
}

// showAll fetches the current text right away, skipping the debounce
// and the minimum query length. An empty input asks for every option.
func (m *Model) showAll() tea.Cmd {
	m.selected = nil
	m.query = m.input.Value()
	m.gen++
	return m.fetch(m.query)
}

// invalidateFetch makes any in-flight response stale
func (m *Model) invalidateFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.seq++
	m.pending = false
}

func (m *Model) applyResults(res domain.Results) {
	res = res.Truncate(m.opts.MaxResults)
	m.results = res.Suggestions
	m.state.SetResults(len(m.results), res.Mode.IsAutocomplete(), m.focused)
	if len(m.results) > 0 {
		m.publish(domain.SuggestionsReceivedEvent{Query: res.Query, Count: len(m.results), Mode: res.Mode})
	}
}

func (m *Model) clearResults() {
	m.results = nil
	m.state.Clear()
}

// apply runs actions in order and collects their commands
func (m Model) apply(actions []Action) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, action := range actions {
		switch a := action.(type) {
		case NavigateAction:
			m.navigate(a.Direction)
		case ShowListAction:
			if m.state.Show() {
				if a.Last {
					m.state.Last()
				} else {
					m.state.First()
				}
			}
			m.syncInputToActive()
		case ShowAllAction:
			cmds = append(cmds, m.showAll())
		case HoverAction:
			m.state.SetActive(a.Index)
		case CommitAction:
			idx := a.Index
			if idx < 0 {
				idx = m.state.ActiveIndex()
			}
			cmds = append(cmds, m.commit(idx))
		case SubmitTextAction:
			cmds = append(cmds, m.submit())
		case AcceptAction:
			m.accept()
		case ClearAction:
			m.clear()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) navigate(direction string) {
	switch direction {
	case "next":
		m.state.Next()
	case "prev":
		m.state.Prev()
	case "pagedown":
		m.state.PageDown()
	case "pageup":
		m.state.PageUp()
	case "first":
		m.state.First()
	case "last":
		m.state.Last()
	}
	m.syncInputToActive()
}

// syncInputToActive mirrors the active row into the input in autocomplete mode
func (m *Model) syncInputToActive() {
	if !m.state.AutocompleteMode() {
		return
	}
	if i := m.state.ActiveIndex(); i >= 0 && i < len(m.results) {
		m.input.SetValue(m.results[i].Text)
	} else {
		m.input.SetValue(m.query)
	}
	m.input.CursorEnd()
}

func (m *Model) commit(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.results) {
		return nil
	}
	s := m.results[idx]
	query := m.query

	m.input.SetValue(s.Text)
	m.input.CursorEnd()
	m.query = s.Text
	m.selected = &s
	m.gen++
	m.invalidateFetch()
	m.state.SetActive(idx)
	m.state.Hide()

	m.publish(domain.SelectionCommittedEvent{Query: query, Suggestion: s, Index: idx})
	return func() tea.Msg {
		return SelectedMsg{Suggestion: s, Index: idx, Query: query}
	}
}

func (m *Model) submit() tea.Cmd {
	text := m.input.Value()
	m.gen++
	m.invalidateFetch()
	m.state.Hide()

	m.publish(domain.InputSubmittedEvent{Text: text})
	return func() tea.Msg {
		return SubmittedMsg{Text: text}
	}
}

func (m *Model) accept() {
	i := m.state.ActiveIndex()
	if i < 0 || i >= len(m.results) {
		return
	}
	m.input.SetValue(m.results[i].Text)
	m.input.CursorEnd()
	m.query = m.input.Value()
	m.gen++
	m.invalidateFetch()
	// The rows were fetched for the old text
	m.clearResults()
}

func (m *Model) clear() {
	m.input.Reset()
	m.query = ""
	m.selected = nil
	m.gen++
	m.invalidateFetch()
	m.clearResults()
}

func (m *Model) publish(e domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}
