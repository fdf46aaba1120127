package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Accent)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// ForLevel returns the style for a mastery level (0-5).
func ForLevel(level int) lipgloss.Style {
	switch {
	case level >= 4:
		return Good
	case level >= 2:
		return Body
	case level == 1:
		return Warn
	default:
		return Bad
	}
}

// ForScore returns the style for a 0-10 score.
func ForScore(score float64) lipgloss.Style {
	switch {
	case score >= 7:
		return Good
	case score >= 4:
		return Warn
	default:
		return Bad
	}
}
