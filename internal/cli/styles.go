package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
