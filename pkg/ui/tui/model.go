package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"icons8dl/pkg/catalog"
	"icons8dl/pkg/scraper"
	"icons8dl/pkg/ui"
)

// Phase is the stage a run is in
type Phase int

const (
	PhaseFetching Phase = iota
	PhaseDownloading
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseDownloading:
		return "downloading"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event levels shown in the log panel
const (
	LevelInfo    = "INFO"
	LevelSuccess = "SUCCESS"
	LevelWarn    = "WARN"
	LevelError   = "ERROR"
)

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// Model is the bubbletea model for one download run. bubbletea serializes
// Update and View, so it needs no locking.
type Model struct {
	spinner  spinner.Model
	progress progress.Model

	filter  catalog.Filter
	phase   Phase
	tracker *ui.StatusTracker
	report  *scraper.Report
	err     error

	width          int
	height         int
	showHelp       bool
	logMessages    []LogMessage
	maxLogMessages int
	now            func() time.Time
}

// NewModel creates a model for a run over filter
func NewModel(filter catalog.Filter) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentCyan)

	p := progress.New(progress.WithDefaultGradient())
	p.Width = 40

	return Model{
		spinner:        s,
		progress:       p,
		filter:         filter,
		phase:          PhaseFetching,
		tracker:        ui.NewStatusTracker(),
		logMessages:    []LogMessage{},
		maxLogMessages: 50,
		now:            time.Now,
	}
}

// Init starts the spinner
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Phase returns the current phase
func (m *Model) Phase() Phase {
	return m.phase
}

// Tracker returns the run counters
func (m *Model) Tracker() *ui.StatusTracker {
	return m.tracker
}

// AddLogMessage appends an event, keeping only the most recent ones
func (m *Model) AddLogMessage(level, message string) {
	m.logMessages = append(m.logMessages, LogMessage{
		Time:    m.now(),
		Level:   level,
		Message: message,
		Color:   levelColor(level),
	})

	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// LogMessages returns the retained events, oldest first
func (m *Model) LogMessages() []LogMessage {
	return m.logMessages
}
