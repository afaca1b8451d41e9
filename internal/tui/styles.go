package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	LeftScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	RightScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A90E2")).
			Bold(true)

	// Applied on top of a score style while the score is pulsing
	PulseStyle = lipgloss.NewStyle().
			Reverse(true)

	FieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262"))

	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
