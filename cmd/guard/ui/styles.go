// Package ui provides the terminal dashboard for guardrail diagnostics.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors, same in light and dark terminals.
var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorMuted   = lipgloss.Color("240")
)

// Styles holds the dashboard's lipgloss styles.
type Styles struct {
	Title   lipgloss.Style
	Summary lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns the standard dashboard styling.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1),
		Summary: lipgloss.NewStyle().Padding(0, 1),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Help:    lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		Border:  lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(colorMuted),
	}
}
