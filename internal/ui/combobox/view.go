package combobox

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// View renders the input line and, when shown, the suggestion window
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Prompt.Render(m.opts.Prompt))
	b.WriteString(m.input.View())
	if ghost := m.ghost(); ghost != "" {
		b.WriteString(m.styles.Ghost.Render(ghost))
	}
	if m.pending {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}

	if !m.state.Shown() {
		return b.String()
	}

	start, end := m.state.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(i))
	}

	if m.state.ResultsCount() > m.state.MaxVisible() {
		pos := m.state.ActiveIndex() + 1
		more := ""
		if start > 0 {
			more += "↑"
		}
		if end < m.state.ResultsCount() {
			more += "↓"
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Scroll.Render(fmt.Sprintf("  %d/%d %s", pos, m.state.ResultsCount(), more)))
	}

	return b.String()
}

// ghost returns the inline completion shown after the typed text, if any
func (m Model) ghost() string {
	if !m.state.Shown() || !m.state.AutocompleteMode() {
		return ""
	}
	i := m.state.ActiveIndex()
	if i < 0 || i >= len(m.results) {
		return ""
	}
	typed := m.input.Value()
	if typed != m.query || typed == "" {
		return ""
	}
	// Compare by runes: case folding may change byte length
	text, prefix := []rune(m.results[i].Text), []rune(typed)
	if len(text) <= len(prefix) || !strings.EqualFold(string(text[:len(prefix)]), typed) {
		return ""
	}
	return string(text[len(prefix):])
}

func (m Model) renderRow(i int) string {
	textWidth := m.width - 2
	if textWidth < 1 {
		textWidth = 1
	}

	text := truncate.StringWithTail(m.results[i].Text, uint(textWidth), "…")
	pad := ""
	if w := runewidth.StringWidth(text); w < textWidth {
		pad = strings.Repeat(" ", textWidth-w)
	}

	if i == m.state.ActiveIndex() {
		return m.styles.Marker.Render("▸ ") + m.styles.ActiveRow.Render(text+pad)
	}
	return "  " + m.highlight(text) + m.styles.Row.Render(pad)
}

// highlight underlines the first occurrence of the typed query
func (m Model) highlight(text string) string {
	q := strings.TrimSpace(m.query)
	lower := strings.ToLower(text)
	if q == "" || len(lower) != len(text) {
		return m.styles.Row.Render(text)
	}
	idx := strings.Index(lower, strings.ToLower(q))
	if idx < 0 || len(strings.ToLower(q)) != len(q) {
		return m.styles.Row.Render(text)
	}
	end := idx + len(q)
	return m.styles.Row.Render(text[:idx]) +
		m.styles.Match.Inherit(m.styles.Row).Render(text[idx:end]) +
		m.styles.Row.Render(text[end:])
}
