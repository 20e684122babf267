package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Banner printed at the top of an interactive run
const Banner = `
  ╔═════════════════════════════════════════╗
  ║  ▀█▀ █▀▀ █▀█ █▄ █ █▀ ▄▀▄   █▀▄ █         ║
  ║  ▄█▄ █▄▄ █▄█ █ ▀█ ▄█ ▀▄▀   █▄▀ █▄▄       ║
  ║        bulk icon downloader             ║
  ╚═════════════════════════════════════════╝
`

// Output is where the print helpers write. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

var (
	colorEnabled atomic.Bool
	renderer     = lipgloss.NewRenderer(os.Stdout)
)

func init() {
	SetColorEnabled(true)
}

// SetColorEnabled turns colors on or off for every helper in this package.
// Enabled colors use the 16-color ANSI palette.
func SetColorEnabled(enabled bool) {
	colorEnabled.Store(enabled)
	if enabled {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
}

// ColorEnabled reports whether colors are in use
func ColorEnabled() bool {
	return colorEnabled.Load()
}

// Color functions for terminal output
var (
	Cyan    = colorize(renderer.NewStyle().Foreground(lipgloss.Color("6")))
	Yellow  = colorize(renderer.NewStyle().Foreground(lipgloss.Color("3")))
	Red     = colorize(renderer.NewStyle().Foreground(lipgloss.Color("1")))
	Green   = colorize(renderer.NewStyle().Foreground(lipgloss.Color("2")))
	Magenta = colorize(renderer.NewStyle().Foreground(lipgloss.Color("5")))
	Bold    = colorize(renderer.NewStyle().Bold(true))
	Dim     = colorize(renderer.NewStyle().Faint(true))
)

// colorize returns a function that renders text with style, or returns it
// unchanged when colors are off
func colorize(style lipgloss.Style) func(string) string {
	return func(text string) string {
		if !colorEnabled.Load() {
			return text
		}
		return style.Render(text)
	}
}

// PrintBanner prints the banner with color
func PrintBanner() {
	fmt.Fprintf(Output, "\n%s\n", Cyan(strings.Trim(Banner, "\n")))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(Output, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(Output, Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	fmt.Fprintln(Output, Green(msg))
}

// PrintInfo prints a label and value pair
func PrintInfo(label string, value string) {
	fmt.Fprintf(Output, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(Output, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(Output, Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	fmt.Fprintln(Output, Magenta(msg))
}
