package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"icons8dl/internal/downloader"
	"icons8dl/pkg/catalog"
	"icons8dl/pkg/scraper"
	"icons8dl/pkg/ui"
)

// TUI drives a bubbletea program from the scraper's observer callbacks. When
// the program exits, the final summary is printed by the wrapped display.
type TUI struct {
	program *tea.Program
	model   *Model
	summary *ui.ProgressDisplay

	once sync.Once
	done chan struct{}
	err  error
}

var _ ui.Display = (*TUI)(nil)

// NewTUI creates a TUI for a run over filter. summary receives every event as
// well and prints the closing table; it should be created in quiet mode.
func NewTUI(filter catalog.Filter, summary *ui.ProgressDisplay, opts ...tea.ProgramOption) *TUI {
	model := NewModel(filter)
	return &TUI{
		program: tea.NewProgram(&model, opts...),
		model:   &model,
		summary: summary,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background
func (t *TUI) Start() {
	t.once.Do(func() {
		go func() {
			defer close(t.done)
			_, t.err = t.program.Run()
		}()
	})
}

// Wait blocks until the program exits
func (t *TUI) Wait() error {
	<-t.done
	return t.err
}

// Send sends a message to the program. It is a no-op once the program has exited.
func (t *TUI) Send(msg tea.Msg) {
	t.program.Send(msg)
}

// PageFetched implements scraper.Observer
func (t *TUI) PageFetched(total int) {
	t.summary.PageFetched(total)
	t.Send(PageFetchedMsg{Total: total})
}

// DownloadStarted implements scraper.Observer
func (t *TUI) DownloadStarted(total int) {
	t.summary.DownloadStarted(total)
	t.Send(DownloadStartedMsg{Total: total})
}

// IconDone implements scraper.Observer
func (t *TUI) IconDone(result downloader.DownloadResult) {
	t.summary.IconDone(result)
	t.Send(IconDoneMsg{Result: result})
}

// Complete stops the program and prints the summary table
func (t *TUI) Complete(report *scraper.Report) {
	t.Send(RunFinishedMsg{Report: report})
	t.Wait()
	t.summary.Complete(report)
}

// Fail stops the program and prints err
func (t *TUI) Fail(err error) {
	t.Send(RunFinishedMsg{Err: err})
	t.Wait()
	t.summary.Fail(err)
}
