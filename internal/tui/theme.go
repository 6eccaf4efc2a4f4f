package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds all browser styles and colors.
var (
	// Colors.
	colorPurple = lipgloss.Color("#A855F7")
	colorRed    = lipgloss.Color("#EF4444")
	colorDim    = lipgloss.Color("#6B7280")
	colorCyan   = lipgloss.Color("#06B6D4")
	colorWhite  = lipgloss.Color("#F9FAFB")

	// List title.
	titleStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorPurple).
			Padding(0, 1)

	// Component view header.
	headerStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Key hints at the bottom of the component view.
	hintStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Error display.
	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)
