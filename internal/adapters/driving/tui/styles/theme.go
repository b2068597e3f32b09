// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Pinned highlights pinned prompts.
	Pinned lipgloss.Color

	// Warning indicates degraded operation.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Pinned:     lipgloss.Color("#F9E2AF"), // Yellow
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the header.
	Title lipgloss.Style

	// Input style for the query box.
	Input lipgloss.Style

	// Result style for an unselected result line.
	Result lipgloss.Style

	// Selected style for the highlighted result line.
	Selected lipgloss.Style

	// Pinned style for the pinned marker.
	Pinned lipgloss.Style

	// Tag style for tag names.
	Tag lipgloss.Style

	// Status style for the status line.
	Status lipgloss.Style

	// Warning style for degradation notices.
	Warning lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	return &Styles{
		theme: theme,
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Result: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Selected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Pinned: lipgloss.NewStyle().
			Foreground(theme.Pinned),
		Tag: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),
		Error: lipgloss.NewStyle().
			Foreground(theme.Error),
	}
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}
