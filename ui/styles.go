package ui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
)

// Terminal menu styles.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	submenuStyle = lipgloss.NewStyle().
			Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	footerStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)
)

// stateStyles colour the status line by icon state.
var stateStyles = map[IconState]lipgloss.Style{
	IconOnline:    lipgloss.NewStyle().Foreground(colorGreen),
	IconAttention: lipgloss.NewStyle().Foreground(colorOrange).Bold(true),
	IconOffline:   lipgloss.NewStyle().Foreground(colorRed),
}
