package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"suggestbox/internal/ui/combobox"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title string
	err   error
}

// HelpRenderer renders key help for the pager
type HelpRenderer struct {
	combo combobox.KeyMap
	app   AppKeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(combo combobox.KeyMap, app AppKeyMap) *HelpRenderer {
	return &HelpRenderer{combo: combo, app: app}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	var help strings.Builder

	help.WriteString(titleStyle.Render("suggestbox help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Suggestions"))
	help.WriteString("\n")
	writeBindings(&help, r.combo.Next, r.combo.Prev, r.combo.PageDown, r.combo.PageUp, r.combo.First, r.combo.Last)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Input"))
	help.WriteString("\n")
	writeBindings(&help, r.combo.Commit, r.combo.Accept, r.combo.Clear)
	help.WriteString(fmt.Sprintf("  %-14s %s\n", "click", "select suggestion under the pointer"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	writeBindings(&help, r.app.Help, r.app.History, r.app.Quit)

	return help.String()
}

func writeBindings(b *strings.Builder, bindings ...key.Binding) {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	for _, kb := range bindings {
		h := kb.Help()
		b.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-14s", h.Key)), descStyle.Render(h.Desc)))
	}
}

// RenderHistory formats committed entries, newest first
func RenderHistory(entries []HistoryEntry) string {
	if len(entries) == 0 {
		return "No selections yet.\n"
	}
	var b strings.Builder
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		kind := "selected"
		if !e.Committed {
			kind = "submitted"
		}
		line := fmt.Sprintf("%s  %-9s  %s", e.At.Format(time.TimeOnly), kind, e.Text)
		if e.ID != "" {
			line += fmt.Sprintf("  [%s]", e.ID)
		}
		if e.Query != "" && e.Query != e.Text {
			line += fmt.Sprintf("  (typed %q)", e.Query)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// PagerOps runs ov on top of the Bubble Tea program
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// Show displays content in ov until the user quits the pager
func (p *PagerOps) Show(content string) error {
	if p == nil || p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// ov needs a moment to hand the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
