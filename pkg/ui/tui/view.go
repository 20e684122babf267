package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	defaultWidth    = 80
	visibleLogLines = 8
)

// View renders the entire TUI
func (m *Model) View() string {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderPhase())
	sections = append(sections, m.renderStatsPanel(width-2))
	sections = append(sections, m.renderLogsPanel(width-2))

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("q quit • ? help"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) renderHeader() string {
	var parts []string
	if m.filter.Style != "" {
		parts = append(parts, "style="+m.filter.Style)
	}
	if m.filter.Query != "" {
		parts = append(parts, "query="+m.filter.Query)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("icons8dl"),
		filterStyle.Render(strings.Join(parts, " ")),
	)
}

// renderPhase shows the spinner while fetching and the bar while downloading
func (m *Model) renderPhase() string {
	switch m.phase {
	case PhaseFetching:
		return fmt.Sprintf("%s Fetching icons from API... (%d found)", m.spinner.View(), m.tracker.Found)
	case PhaseDownloading:
		return fmt.Sprintf("%s (%d/%d)", m.progress.View(), m.tracker.Completed(), m.tracker.Total)
	case PhaseDone:
		return successStyle.Render(fmt.Sprintf("✓ Done (%d/%d)", m.tracker.Completed(), m.tracker.Total))
	default:
		msg := "run failed"
		if m.err != nil {
			msg = m.err.Error()
		}
		return errorStyle.Render("✗ " + msg)
	}
}

func (m *Model) renderStatsPanel(width int) string {
	elapsed := m.now().Sub(m.tracker.StartTime)
	if m.phase == PhaseFetching {
		elapsed = 0
	}

	stats := []string{
		stat("Found:", fmt.Sprintf("%d", m.tracker.Found)),
		stat("Downloaded:", successStyle.Render(fmt.Sprintf("%d", m.tracker.Succeeded))),
		stat("Failed:", failedCount(m.tracker.Failed)),
		stat("Size:", humanize.Bytes(uint64(m.tracker.Bytes))),
		stat("Elapsed:", formatDuration(elapsed)),
	}
	if m.phase == PhaseDownloading {
		stats = append(stats, stat("ETA:", formatDuration(m.tracker.ETA())))
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, append([]string{panelTitleStyle.Render("STATS")}, stats...)...),
	)
}

func stat(label, value string) string {
	return fmt.Sprintf("%s %s", statsLabelStyle.Render(label), statsValueStyle.Render(value))
}

func failedCount(n int) string {
	if n == 0 {
		return "0"
	}
	return errorStyle.Render(fmt.Sprintf("%d", n))
}

// renderLogsPanel renders the most recent events
func (m *Model) renderLogsPanel(width int) string {
	start := len(m.logMessages) - visibleLogLines
	if start < 0 {
		start = 0
	}

	var logs []string
	for _, log := range m.logMessages[start:] {
		timestamp := logTimestampStyle.Render(log.Time.Format("15:04:05"))
		level := lipgloss.NewStyle().Foreground(log.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", log.Level))

		text := log.Message
		if maxLen := width - 25; maxLen > 3 && len(text) > maxLen {
			text = text[:maxLen-3] + "..."
		}
		logs = append(logs, fmt.Sprintf("%s %s %s", timestamp, level, logMessageStyle.Render(text)))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(dimWhite).Render("No events yet...")
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, panelTitleStyle.Render("EVENTS"), content),
	)
}

// renderHelp renders the help panel
func (m *Model) renderHelp() string {
	help := `
  Keys:
    q/Q      - Quit the interface (downloads keep running)
    ctrl+l   - Clear events
    ?        - Toggle this help

  Status:
    ` + successStyle.Render("Green") + `    - Saved
    ` + warningStyle.Render("Orange") + `   - Warning
    ` + errorStyle.Render("Red") + `      - Failed
`
	return panelStyle.Render(help)
}

// formatDuration formats a duration as mm:ss or hh:mm:ss
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
