package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"icons8dl/internal/downloader"
	"icons8dl/pkg/scraper"
)

// Message types for the TUI

// PageFetchedMsg is sent after each catalog page
type PageFetchedMsg struct {
	Total int
}

// DownloadStartedMsg is sent once the download phase begins
type DownloadStartedMsg struct {
	Total int
}

// IconDoneMsg is sent for every finished icon
type IconDoneMsg struct {
	Result downloader.DownloadResult
}

// RunFinishedMsg ends the program. Err is set when the run aborted.
type RunFinishedMsg struct {
	Report *scraper.Report
	Err    error
}

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

const maxProgressWidth = 60

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(min(msg.Width-4, maxProgressWidth), 10)
		return m, nil

	case spinner.TickMsg:
		if m.phase != PhaseFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		updated, cmd := m.progress.Update(msg)
		if p, ok := updated.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd

	case PageFetchedMsg:
		m.tracker.Found = msg.Total
		return m, nil

	case DownloadStartedMsg:
		m.phase = PhaseDownloading
		m.tracker.Total = msg.Total
		m.tracker.StartTime = m.now()
		m.AddLogMessage(LevelInfo, fmt.Sprintf("Found %d icons, downloading", msg.Total))
		return m, nil

	case IconDoneMsg:
		r := msg.Result
		m.tracker.Record(r.Success, r.Size)
		if r.Success {
			m.AddLogMessage(LevelSuccess, "Saved "+r.Job.Icon.Name)
		} else {
			m.AddLogMessage(LevelError, fmt.Sprintf("Failed %s: %v", r.Job.Icon.Name, r.Error))
		}
		return m, m.progress.SetPercent(m.tracker.Fraction())

	case RunFinishedMsg:
		m.report = msg.Report
		m.err = msg.Err
		if msg.Err != nil {
			m.phase = PhaseFailed
			m.AddLogMessage(LevelError, msg.Err.Error())
		} else {
			m.phase = PhaseDone
			m.AddLogMessage(LevelInfo, "Run finished")
		}
		return m, tea.Quit

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		m.logMessages = []LogMessage{}
		return m, nil
	}

	return m, nil
}
