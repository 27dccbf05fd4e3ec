package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles used by the list editor.
type Theme struct {
	Title     lipgloss.Style
	Task      lipgloss.Style
	Completed lipgloss.Style
	Selected  lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	Muted     lipgloss.Style
	Modal     lipgloss.Style
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
	Task:      lipgloss.NewStyle(),
	Completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#565f89")),
	Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bb9af7")),
	Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
	Failure:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
	Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
	Modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#e0af68")).
		Padding(1, 2),
}
