package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"icons8dl/pkg/catalog"
	"icons8dl/pkg/config"
	"icons8dl/pkg/logger"
	"icons8dl/pkg/scraper"
	"icons8dl/pkg/ui"
	"icons8dl/pkg/ui/tui"
)

var (
	// Download command flags
	targetDir      string
	iconSize       int
	style          string
	query          string
	concurrency    int
	noCache        bool
	useTUI         bool
	saveMetadata   bool
	metadataFormat string
	apiLanguage    string
	logFile        string
	notify         bool
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download every icon matching a style and/or search term",
	Long: `Download every icon matching a style and/or search term.

At least one of --style and --query is required. The catalog is fetched page
by page, file names are assigned against what already exists in the target
directory, and the images are then downloaded concurrently.

A run log named download-log-YYYYMMDD-HHMMSS.log is written into the target
directory unless logging.file is configured.

The exit status is non-zero only when the catalog cannot be fetched. Failed
icon downloads are counted in the summary.`,
	Example: `  icons8dl download --style ios --size 48
  icons8dl download --query "shopping cart" --target-directory ~/icons --no-cache`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	addDownloadFlags(downloadCmd)
}

// addDownloadFlags registers the download flags on cmd. The root command and
// the download subcommand share the same variables.
func addDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&targetDir, "target-directory", "t", "", "directory to save icons in (default ~/Downloads)")
	cmd.Flags().IntVarP(&iconSize, "size", "s", 512, fmt.Sprintf("icon size in pixels, one of %v", config.ValidSizes))
	cmd.Flags().StringVar(&style, "style", "", "icon style, e.g. ios, color, fluency")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search term")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "n", 10, "number of concurrent downloads")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "ignore and do not write the catalog cache")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "use the interactive terminal interface")
	cmd.Flags().BoolVar(&saveMetadata, "save-metadata", false, "write a manifest of the run into the target directory")
	cmd.Flags().StringVar(&metadataFormat, "metadata-format", "", "manifest format: json or yaml")
	cmd.Flags().StringVar(&apiLanguage, "language", "", "catalog language tag, e.g. en-US")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file path (default: a run log in the target directory)")
	cmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification when the run ends")
}

// changedFlags collects the flags the user set explicitly, keyed by long name
func changedFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "target-directory":
			flags[f.Name] = targetDir
		case "size":
			flags[f.Name] = iconSize
		case "concurrency":
			flags[f.Name] = concurrency
		case "no-cache":
			flags[f.Name] = noCache
		case "save-metadata":
			flags[f.Name] = saveMetadata
		case "metadata-format":
			flags[f.Name] = metadataFormat
		case "language":
			flags[f.Name] = apiLanguage
		case "log-file":
			flags[f.Name] = logFile
		case "notify":
			flags[f.Name] = notify
		case "log-level":
			flags[f.Name] = logLevel
		}
	})
	return flags
}

func runDownload(cmd *cobra.Command, args []string) error {
	filter := catalog.Filter{Style: strings.TrimSpace(style), Query: strings.TrimSpace(query)}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("%w (use --style and/or --query)", err)
	}

	cfg, err := config.Load(configFile, changedFlags(cmd))
	if err != nil {
		return err
	}

	cfg.Output.TargetDirectory, err = expandHome(cfg.Output.TargetDirectory)
	if err != nil {
		return err
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(cfg.Output.TargetDirectory, logger.RunLogFileName(time.Now()))
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close(log)

	log.WithFields(map[string]interface{}{
		"version": version,
		"style":   filter.Style,
		"query":   filter.Query,
		"size":    cfg.Download.Size,
	}).Info("icons8dl starting")

	s, err := scraper.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}

	interactive := stdoutIsTerminal()
	display := newDisplay(filter, cfg, interactive)
	if !quiet && !useTUI {
		if interactive {
			ui.PrintBanner()
		}
		ui.PrintInfo("Target directory", cfg.Output.TargetDirectory)
		ui.PrintInfo("Log file", cfg.Logging.File)
	}

	notifier := ui.NewNotifier(ui.PlatformSender(), cfg.Notifications, log)

	report, err := s.DownloadIcons(context.Background(), filter, display)
	if err != nil {
		log.WithError(err).Error("Download run failed")
		display.Fail(err)
		notifier.RunFailed(err)
		return errReported
	}

	display.Complete(report)
	notifier.RunCompleted(report)
	return nil
}

// newDisplay picks the front end for the run. The TUI needs a terminal; without
// one the plain display is used.
func newDisplay(filter catalog.Filter, cfg *config.Config, interactive bool) ui.Display {
	opts := ui.DisplayOptions{
		Interactive: interactive,
		Quiet:       quiet,
		Debug:       strings.EqualFold(cfg.Logging.Level, "debug"),
		Language:    cfg.API.Language,
	}

	if useTUI && interactive && !quiet {
		opts.Quiet = true
		terminal := tui.NewTUI(filter, ui.NewProgressDisplay(os.Stdout, opts), tea.WithAltScreen())
		terminal.Start()
		return terminal
	}
	return ui.NewProgressDisplay(os.Stdout, opts)
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
