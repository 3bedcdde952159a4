package tui

import "github.com/charmbracelet/lipgloss"

const (
	// MinLapListWidth is the narrowest the lap list is drawn.
	MinLapListWidth = 36
	// MaxLapListWidth caps the lap list on wide terminals.
	MaxLapListWidth = 60
)

const accentColor = lipgloss.Color("#FCBC32")

var (
	colorStart  = lipgloss.Color("2")   // green
	colorPause  = lipgloss.Color("208") // orange
	colorLatest = lipgloss.Color("4")   // blue
	colorMuted  = lipgloss.Color("245") // light gray
	colorDim    = lipgloss.Color("240") // gray
	colorText   = lipgloss.Color("230")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	clockStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Align(lipgloss.Center)

	captionStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	startStyle = lipgloss.NewStyle().
			Foreground(colorStart).
			Bold(true)

	pauseStyle = lipgloss.NewStyle().
			Foreground(colorPause).
			Bold(true)

	controlStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	lapHeaderStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	lapNumberStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(6)

	latestNumberStyle = lapNumberStyle.
				Foreground(colorLatest).
				Bold(true)

	latestBadgeStyle = lipgloss.NewStyle().
				Foreground(colorStart)

	lapTimeStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	splitStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Width(18)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	helpSectionStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true).
				MarginTop(1)
)
