package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	accentCyan    = lipgloss.Color("#00C2FF")
	accentGreen   = lipgloss.Color("#39D353")
	accentYellow  = lipgloss.Color("#F5D547")
	accentOrange  = lipgloss.Color("#FF8C42")
	accentRed     = lipgloss.Color("#FF4D4D")
	accentMagenta = lipgloss.Color("#C678DD")
	dimWhite      = lipgloss.Color("#B0B0B0")
	dimGray       = lipgloss.Color("#666666")

	// Header
	titleStyle = lipgloss.NewStyle().
			Background(accentMagenta).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1)

	filterStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			PaddingLeft(1)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentMagenta).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(accentMagenta).
			Bold(true)

	// Stats
	statsLabelStyle = lipgloss.NewStyle().
			Foreground(accentCyan).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(accentYellow)

	// Status
	successStyle = lipgloss.NewStyle().
			Foreground(accentGreen).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(accentRed).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(accentOrange).
			Bold(true)

	// Event log
	logTimestampStyle = lipgloss.NewStyle().
				Foreground(dimGray)

	logMessageStyle = lipgloss.NewStyle().
			Foreground(dimWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			PaddingLeft(1)
)

// levelColor maps an event level to its color
func levelColor(level string) lipgloss.Color {
	switch level {
	case LevelError:
		return accentRed
	case LevelWarn:
		return accentOrange
	case LevelSuccess:
		return accentGreen
	default:
		return accentCyan
	}
}
