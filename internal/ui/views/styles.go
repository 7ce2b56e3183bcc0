package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for the application frame
type Styles struct {
	Title  lipgloss.Style
	Main   lipgloss.Style
	Status lipgloss.Style
	Count  lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Count: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Help:  lipgloss.NewStyle().Faint(true),
	}
}
