package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	errorColor   = lipgloss.Color("#EF4444") // Red
	okColor      = lipgloss.Color("#10B981") // Green

	// Header styles
	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(primaryColor).
				Padding(0, 1)

	headerStatsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E0E0E0")).
				Background(primaryColor).
				Padding(0, 1)

	headerViewStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(okColor).
			Background(primaryColor).
			Padding(0, 1)

	// Status bar style
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	// Issue list styles
	issueListEmptyStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Padding(1, 2)

	issueRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	issueRowSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#3B3B3B")).
				Padding(0, 1)

	issueIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	issueTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0"))

	statusOpenStyle       = lipgloss.NewStyle().Foreground(okColor)
	statusInProgressStyle = lipgloss.NewStyle().Foreground(primaryColor)
	statusBlockedStyle    = lipgloss.NewStyle().Foreground(errorColor)
	statusClosedStyle     = lipgloss.NewStyle().Foreground(mutedColor)
)
