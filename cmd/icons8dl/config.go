package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"icons8dl/pkg/config"
	"icons8dl/pkg/ui"
)

var forceInit bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage icons8dl configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (ICONS8DL_*)
  - .env files (./.env and ~/.icons8dl.env)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is written to ~/.config/icons8dl/config.yaml unless a different path
is given with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration that a download would use, after merging the
configuration file, .env files, environment variables and defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Validate the configuration for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Icon size, concurrency and timeouts
  - Endpoint URLs and the catalog language tag
  - Whether the target directory can be created`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)

	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")
}

const exampleConfig = `# icons8dl configuration file
#
# Every option can also be set with an environment variable, for example
# ICONS8DL_DOWNLOAD_SIZE=96 or ICONS8DL_OUTPUT_TARGET_DIRECTORY=~/icons

api:
  # Catalog and image endpoints
  catalog_url: "https://api-icons.icons8.com/siteApi/icons/v1/latest"
  image_url: "https://img.icons8.com/"

  # Catalog language (BCP 47 tag) and sort order
  language: "en-US"
  sort_by: "mostDownloaded"

  # Include AI-generated icons in results
  include_ai: true

  user_agent: "icons8dl/1.0"
  timeout: 30s

download:
  # Icon size in pixels: 24, 48, 96, 192, 384 or 512
  size: 512

  # Number of concurrent downloads (any positive number)
  concurrency: 10

  # Per-image request timeout
  timeout: 30s

cache:
  # Cache catalog pages on disk between runs
  enabled: true
  # Defaults to <system temp dir>/icons8
  # dir: "/var/cache/icons8dl"

output:
  # Directory icons are saved to
  target_directory: "~/Downloads"

  # Write icons8-manifest-<timestamp>.<format> next to the icons
  save_metadata: false
  metadata_format: "json"

notifications:
  # Desktop notification when a run ends
  enabled: false
  on_complete: true
  on_error: true

logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log format: json, console
  format: "json"

  # Log file path. Leave empty for download-log-<timestamp>.log in the
  # target directory
  file: ""

  # Also write logs to stderr
  console: false
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil && !forceInit {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite it, run:")
		fmt.Println("  icons8dl config init --force")
		return errReported
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Edit the configuration file")
	fmt.Println("2. Run 'icons8dl config validate' to check it")
	fmt.Println("3. Start downloading with 'icons8dl --style ios'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Printf("2. Environment variables (%s*)\n", config.EnvPrefix)
	fmt.Println("3. .env files")
	if configFile != "" {
		fmt.Printf("4. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("4. Configuration file: (searched in default locations)")
	}
	fmt.Println("5. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		ui.PrintInfo("Validating configuration", configFile)
	} else {
		ui.PrintInfo("Validating configuration", "default locations")
	}

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err)
		return errReported
	}

	var warnings []string
	target, err := expandHome(cfg.Output.TargetDirectory)
	if err != nil {
		warnings = append(warnings, err.Error())
	} else if err := os.MkdirAll(target, 0755); err != nil {
		warnings = append(warnings, fmt.Sprintf("Cannot create target directory: %v", err))
	}
	if cfg.Download.Concurrency > 32 {
		warnings = append(warnings, "High concurrency may get requests throttled")
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Target directory: %s\n", cfg.Output.TargetDirectory)
	fmt.Printf("  Icon size: %dpx\n", cfg.Download.Size)
	fmt.Printf("  Concurrency: %d\n", cfg.Download.Concurrency)
	fmt.Printf("  Cache: %v (%s)\n", cfg.Cache.Enabled, cfg.Cache.Dir)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
	return nil
}
