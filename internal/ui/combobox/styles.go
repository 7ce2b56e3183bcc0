package combobox

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for the combobox
type Styles struct {
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Ghost       lipgloss.Style
	Row         lipgloss.Style
	ActiveRow   lipgloss.Style
	Match       lipgloss.Style
	Marker      lipgloss.Style
	Scroll      lipgloss.Style
	Spinner     lipgloss.Style
}

// DefaultStyles returns the default theme
func DefaultStyles() *Styles {
	return &Styles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Ghost:       lipgloss.NewStyle().Faint(true),
		Row:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ActiveRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Background(lipgloss.Color("238")).
			Bold(true),
		Match:   lipgloss.NewStyle().Underline(true),
		Marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Scroll:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
	}
}
