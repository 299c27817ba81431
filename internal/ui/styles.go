package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.Color("#FF8C42")
	highlight = lipgloss.Color("#FFB84D")
	muted     = lipgloss.Color("#6B7280")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginBottom(1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F1F1F")).
			Background(accent).
			Bold(true).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Foreground(muted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(accent)

	HelpStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1)

	TableBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)
