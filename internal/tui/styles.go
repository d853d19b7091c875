package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	warnFg    = lipgloss.Color("#F5A623")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	activeStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true).Reverse(true)
	noticeStyle = lipgloss.NewStyle().Foreground(warnFg).Bold(true)
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(warnFg).Padding(1, 3)
)
