package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"suggestbox/internal/config"
	"suggestbox/internal/domain"
	"suggestbox/internal/eventbus"
	"suggestbox/internal/source"
	"suggestbox/internal/ui/combobox"
	"suggestbox/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// HistoryEntry records one committed or submitted value
type HistoryEntry struct {
	At        time.Time
	Text      string
	ID        domain.ItemID
	Query     string
	Committed bool // false when raw text was submitted
}

// clipboardMsg reports the outcome of copying a selection
type clipboardMsg struct {
	text string
	err  error
}

// Model is the full-screen application hosting one combobox
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	styles *views.Styles

	combo        combobox.Model
	keys         AppKeyMap
	help         help.Model
	helpRenderer *HelpRenderer
	pager        *PagerOps

	history        []HistoryEntry
	queriesIssued  int
	status         string
	statusGen      int
	width          int
	height         int
	clipboardWrite func(string) error
	now            func() time.Time

	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, src source.Source) *Model {
	combo := combobox.New(src, combobox.Options{
		Placeholder:     cfg.UI.Placeholder,
		Prompt:          cfg.UI.Prompt,
		Debounce:        cfg.UI.Debounce(),
		MinQueryLength:  cfg.UI.MinQueryLength,
		MaxResults:      cfg.UI.MaxResults,
		MaxVisible:      cfg.UI.MaxVisible,
		AutoSelectFirst: cfg.UI.AutoSelectFirst,
		Bus:             bus,
	})

	m := &Model{
		bus:            bus,
		config:         cfg,
		styles:         views.NewStyles(),
		combo:          combo,
		keys:           DefaultAppKeyMap(),
		help:           help.New(),
		clipboardWrite: clipboard.WriteAll,
		now:            time.Now,
	}
	m.helpRenderer = NewHelpRenderer(combo.KeyMap(), m.keys)
	m.combo.SetOrigin(m.comboOrigin())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// History returns the recorded selections, oldest first
func (m *Model) History() []HistoryEntry {
	return m.history
}

// Combo returns the hosted combobox
func (m *Model) Combo() combobox.Model {
	return m.combo
}

// Init focuses the combobox
func (m *Model) Init() tea.Cmd {
	return m.combo.Focus()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.combo.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m, m.showPager("help", m.helpRenderer.RenderHelpContent())
		case key.Matches(msg, m.keys.History):
			return m, m.showPager("history", RenderHistory(m.history))
		}

	case combobox.SelectedMsg:
		m.history = append(m.history, HistoryEntry{
			At:        m.now(),
			Text:      msg.Suggestion.Text,
			ID:        msg.Suggestion.ID,
			Query:     msg.Query,
			Committed: true,
		})
		log.Printf("Selected %q (id %q) for query %q", msg.Suggestion.Text, msg.Suggestion.ID, msg.Query)
		cmds := []tea.Cmd{m.setStatus(fmt.Sprintf("Selected %q", msg.Suggestion.Text))}
		if m.config.UI.CopyOnSelect {
			cmds = append(cmds, m.copyToClipboard(msg.Suggestion.Text))
		}
		return m, tea.Batch(cmds...)

	case combobox.SubmittedMsg:
		m.history = append(m.history, HistoryEntry{At: m.now(), Text: msg.Text})
		log.Printf("Submitted %q", msg.Text)
		return m, m.setStatus(fmt.Sprintf("Submitted %q", msg.Text))

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			log.Printf("Clipboard copy failed: %v", msg.err)
			return m, nil
		}
		return m, m.setStatus(fmt.Sprintf("Copied %q", msg.text))

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("%s pager failed: %v", msg.title, msg.err)
		}
		return m, nil

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.combo, cmd = m.combo.Update(msg)
	return m, cmd
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch e.(type) {
	case eventbus.QueryIssuedEvent:
		m.queriesIssued++
	}
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusGen++
	gen := m.statusGen
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}

func (m *Model) copyToClipboard(text string) tea.Cmd {
	write := m.clipboardWrite
	return func() tea.Msg {
		return clipboardMsg{text: text, err: write(text)}
	}
}

// showPager returns a command that shows content using the ov pager
func (m *Model) showPager(title, content string) tea.Cmd {
	if m.pager == nil {
		log.Printf("No program attached, cannot open %s pager", title)
		return nil
	}
	pager := m.pager
	return func() tea.Msg {
		return pagerMsg{title: title, err: pager.Show(content)}
	}
}

// comboOrigin returns the screen position of the combobox input line
func (m *Model) comboOrigin() (int, int) {
	top, _, _, left := m.styles.Main.GetPadding()
	return left, top + lipgloss.Height(m.styles.Title.Render(m.title()))
}

func (m *Model) title() string {
	return "suggestbox · " + m.config.Source.URL()
}

// View renders the application
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title()))
	b.WriteString("\n")
	b.WriteString(m.combo.View())
	b.WriteString("\n")

	state := m.combo.State()
	info := m.styles.Count.Render(fmt.Sprintf("%d suggestions", state.ResultsCount()))
	info += m.styles.Status.UnsetMarginTop().Render(fmt.Sprintf(" · %d queries · %d selected", m.queriesIssued, len(m.history)))
	if m.status != "" {
		info += m.styles.Status.UnsetMarginTop().Render(" · " + m.status)
	}
	b.WriteString(m.styles.Status.Render(info))
	b.WriteString("\n")

	bindings := append(m.combo.KeyMap().ShortHelp(), m.keys.Help, m.keys.Quit)
	b.WriteString(m.styles.Help.Render(m.help.View(shortHelp{bindings: bindings})))

	return m.styles.Main.Render(b.String())
}
