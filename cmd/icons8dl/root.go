package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"icons8dl/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
)

// errReported marks a failure that has already been shown to the user
var errReported = errors.New("already reported")

// rootCmd downloads icons when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "icons8dl",
	Short: "Bulk downloader for icons8 icons",
	Long: `icons8dl downloads every icon that matches a style, a search term, or both
from the icons8 catalog and saves them as PNG files.

Catalog pages are cached on disk, so repeated runs with the same filter only
hit the network for the images. File names never overwrite existing files:
a second "Home" icon becomes "Home(1).png".`,
	Example: `  # All icons in the iOS style at 96px
  icons8dl --style ios --size 96

  # Search results into a chosen directory
  icons8dl -q arrow -t ./arrows

  # Both filters, with the interactive interface
  icons8dl --style color --query weather --tui`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetColorEnabled(!noColor && stdoutIsTerminal())
	},
	RunE: runDownload,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			ui.PrintError("Error", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ~/.config/icons8dl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "print only the final summary")

	addDownloadFlags(rootCmd)

	// Version template
	rootCmd.SetVersionTemplate(`icons8dl {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
