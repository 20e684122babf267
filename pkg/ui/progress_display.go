package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"icons8dl/internal/downloader"
	"icons8dl/pkg/scraper"
)

const barWidth = 30

// ProgressDisplay renders the fetch counter, the download bar and the final
// summary on a terminal. It implements scraper.Observer.
type ProgressDisplay struct {
	mu          sync.Mutex
	out         io.Writer
	printer     *message.Printer
	tracker     *StatusTracker
	interactive bool
	quiet       bool
	debug       bool
	lastPercent int
}

// DisplayOptions configures a ProgressDisplay
type DisplayOptions struct {
	// Interactive redraws a single line with carriage returns. Otherwise every
	// update is a new line, and download progress is printed in 10% steps.
	Interactive bool
	// Quiet suppresses progress output; the summary is still printed.
	Quiet bool
	// Debug prints one line per finished icon.
	Debug bool
	// Language selects digit grouping in the summary.
	Language string
}

var _ scraper.Observer = (*ProgressDisplay)(nil)

// NewProgressDisplay creates a display writing to out
func NewProgressDisplay(out io.Writer, opts DisplayOptions) *ProgressDisplay {
	tag, err := language.Parse(opts.Language)
	if err != nil {
		tag = language.English
	}
	return &ProgressDisplay{
		out:         out,
		printer:     message.NewPrinter(tag),
		tracker:     NewStatusTracker(),
		interactive: opts.Interactive,
		quiet:       opts.Quiet,
		debug:       opts.Debug,
		lastPercent: -10,
	}
}

// PageFetched updates the running count of icons found
func (p *ProgressDisplay) PageFetched(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracker.Found = total
	if p.quiet {
		return
	}
	line := p.printer.Sprintf("Fetching icons from API... (%d found)", total)
	if p.interactive {
		fmt.Fprintf(p.out, "\r%s", Cyan(line))
	} else {
		fmt.Fprintln(p.out, line)
	}
}

// DownloadStarted switches from the fetch counter to the download bar
func (p *ProgressDisplay) DownloadStarted(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracker.Total = total
	p.tracker.StartTime = time.Now()
	if p.quiet {
		return
	}
	if p.interactive && p.tracker.Found > 0 {
		fmt.Fprintln(p.out)
	}
	fmt.Fprintln(p.out, p.printer.Sprintf("Downloading %d icons...", total))
	p.printProgress()
}

// IconDone advances the download bar
func (p *ProgressDisplay) IconDone(result downloader.DownloadResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracker.Record(result.Success, result.Size)
	if p.quiet {
		return
	}
	if p.debug {
		p.printDebugResult(result)
		return
	}
	p.printProgress()
}

// printProgress prints the bar; must hold p.mu
func (p *ProgressDisplay) printProgress() {
	if p.interactive {
		line := fmt.Sprintf("%s %s", Green(p.tracker.Bar(barWidth)), Dim(humanize.Bytes(uint64(p.tracker.Bytes))))
		if p.tracker.Failed > 0 {
			line += " " + Red(fmt.Sprintf("%d failed", p.tracker.Failed))
		}
		if p.tracker.Completed() < p.tracker.Total {
			if eta := p.tracker.ETA(); eta > 0 {
				line += " " + Dim("eta "+formatDuration(eta))
			}
		}
		fmt.Fprintf(p.out, "\r\033[K%s", line)
		return
	}

	percent := int(p.tracker.Fraction() * 100)
	if percent/10 == p.lastPercent/10 && p.tracker.Completed() != p.tracker.Total {
		return
	}
	p.lastPercent = percent
	fmt.Fprintln(p.out, p.tracker.Bar(barWidth))
}

func (p *ProgressDisplay) printDebugResult(result downloader.DownloadResult) {
	if result.Success {
		fmt.Fprintf(p.out, "%s %s • %s\n", Green("✓"), result.Job.Path, humanize.Bytes(uint64(result.Size)))
		return
	}
	fmt.Fprintf(p.out, "%s %s (%s) - %v\n", Red("✗"), result.Job.Icon.Name, result.Job.Icon.ID, result.Error)
}

// Complete ends the progress line and prints the summary table
func (p *ProgressDisplay) Complete(report *scraper.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.quiet && p.interactive && p.tracker.Found > 0 {
		fmt.Fprintln(p.out)
	}
	fmt.Fprint(p.out, p.summary(report))
}

func (p *ProgressDisplay) summary(report *scraper.Report) string {
	var b strings.Builder
	b.WriteString("\n" + Bold("Download Summary") + "\n")
	b.WriteString(p.summaryTable(report).Render() + "\n")

	switch {
	case report.Total == 0:
		b.WriteString(Yellow("No icons matched the filter.") + "\n")
	case report.Failed > 0:
		b.WriteString(Yellow(fmt.Sprintf("%d icons failed; see the log file for details.", report.Failed)) + "\n")
	default:
		b.WriteString(Green("✓ All icons downloaded.") + "\n")
	}
	return b.String()
}

// summaryTable lays out the run totals as Metric/Value rows. The renderer is
// bound to p.out, so output that is not a terminal stays unstyled.
func (p *ProgressDisplay) summaryTable(report *scraper.Report) *table.Table {
	r := lipgloss.NewRenderer(p.out)
	if !ColorEnabled() {
		r.SetColorProfile(termenv.Ascii)
	}
	cell := r.NewStyle().Padding(0, 1)
	header := cell.Bold(true).Foreground(lipgloss.Color("6"))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("Metric", "Value").
		Row("Total found", p.printer.Sprintf("%d", report.Total)).
		Row("Successfully downloaded", p.printer.Sprintf("%d", report.Succeeded)).
		Row("Failed", p.printer.Sprintf("%d", report.Failed))
	if p.tracker.Bytes > 0 {
		t.Row("Downloaded size", humanize.Bytes(uint64(p.tracker.Bytes)))
	}
	t.Row("Target directory", report.TargetDir)
	t.Row("Elapsed", formatDuration(report.Duration))
	if report.ManifestPath != "" {
		t.Row("Manifest", report.ManifestPath)
	}
	return t
}

// Fail ends the progress line and prints a fatal error
func (p *ProgressDisplay) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interactive && p.tracker.Found > 0 {
		fmt.Fprintln(p.out)
	}
	fmt.Fprintln(p.out, Red("✗ "+err.Error()))
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
