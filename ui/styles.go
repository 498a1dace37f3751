package ui

import "github.com/charmbracelet/lipgloss"

var (
	fuchsia = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	green   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	gray    = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	midGray = lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"}
	yellow  = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#ECFD65"}

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(gray)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(fuchsia).
			Bold(true)

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true)

	soundingStyle = lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true)

	learnedStyle = lipgloss.NewStyle().
			Foreground(green)

	dimStyle = lipgloss.NewStyle().
			Foreground(gray)

	posStyle = lipgloss.NewStyle().
			Foreground(midGray).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(gray)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}).
			Bold(true)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(fuchsia).
			Padding(1, 2)

	promptStyle = lipgloss.NewStyle().
			Bold(true)
)
