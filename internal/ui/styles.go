package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8C42")).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8C42")).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	CheckedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB84D")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB84D")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF8C42")).
			Padding(1, 2)
)

var (
	// SeriesStyles color the chart bars, one per numeric column.
	SeriesStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#4DA3FF")),
	}

	NegativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF8C42")).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#6B7280")).
				BorderBottom(true)
)
