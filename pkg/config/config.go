package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the tool reads
const EnvPrefix = "ICONS8DL_"

// ValidSizes lists the pixel sizes the image endpoint serves
var ValidSizes = []int{24, 48, 96, 192, 384, 512}

// Config holds all configuration options for the icon downloader
type Config struct {
	// Catalog and image endpoints
	API APIConfig `yaml:"api" json:"api" envPrefix:"API_"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download" envPrefix:"DOWNLOAD_"`

	// Response cache
	Cache CacheConfig `yaml:"cache" json:"cache" envPrefix:"CACHE_"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output" envPrefix:"OUTPUT_"`

	// Notification preferences
	Notifications NotificationConfig `yaml:"notifications" json:"notifications" envPrefix:"NOTIFICATIONS_"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging" envPrefix:"LOG_"`
}

// APIConfig describes how the catalog is queried
type APIConfig struct {
	CatalogURL string        `yaml:"catalog_url" json:"catalog_url" env:"CATALOG_URL"`
	ImageURL   string        `yaml:"image_url" json:"image_url" env:"IMAGE_URL"`
	Language   string        `yaml:"language" json:"language" env:"LANGUAGE"`
	SortBy     string        `yaml:"sort_by" json:"sort_by" env:"SORT_BY"`
	IncludeAI  bool          `yaml:"include_ai" json:"include_ai" env:"INCLUDE_AI"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" env:"USER_AGENT"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	Size        int           `yaml:"size" json:"size" env:"SIZE"`
	Concurrency int           `yaml:"concurrency" json:"concurrency" env:"CONCURRENCY"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`
}

// CacheConfig controls the on-disk response cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" env:"ENABLED"`
	Dir     string `yaml:"dir" json:"dir" env:"DIR"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	TargetDirectory string `yaml:"target_directory" json:"target_directory" env:"TARGET_DIRECTORY"`
	SaveMetadata    bool   `yaml:"save_metadata" json:"save_metadata" env:"SAVE_METADATA"`
	MetadataFormat  string `yaml:"metadata_format" json:"metadata_format" env:"METADATA_FORMAT"`
}

// NotificationConfig holds notification preferences
type NotificationConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled" env:"ENABLED"`
	OnComplete bool `yaml:"on_complete" json:"on_complete" env:"ON_COMPLETE"`
	OnError    bool `yaml:"on_error" json:"on_error" env:"ON_ERROR"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level" env:"LEVEL"`
	Format  string `yaml:"format" json:"format" env:"FORMAT"`
	File    string `yaml:"file" json:"file" env:"FILE"`
	Console bool   `yaml:"console" json:"console" env:"CONSOLE"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			CatalogURL: "https://api-icons.icons8.com/siteApi/icons/v1/latest",
			ImageURL:   "https://img.icons8.com/",
			Language:   "en-US",
			SortBy:     "mostDownloaded",
			IncludeAI:  true,
			UserAgent:  "icons8dl/1.0",
			Timeout:    30 * time.Second,
		},
		Download: DownloadConfig{
			Size:        512,
			Concurrency: 10,
			Timeout:     30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(os.TempDir(), "icons8"),
		},
		Output: OutputConfig{
			TargetDirectory: DefaultDownloadsDir(),
			SaveMetadata:    false,
			MetadataFormat:  "json",
		},
		Notifications: NotificationConfig{
			Enabled:    false,
			OnComplete: true,
			OnError:    true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "json",
			File:    "",
			Console: false,
		},
	}
}

// DefaultDownloadsDir returns ~/Downloads, falling back to the working directory
func DefaultDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// LoadFromEnv overrides fields from ICONS8DL_* environment variables
func (c *Config) LoadFromEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// DefaultConfigPath is where `config init` writes when no path is given
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "icons8dl", "config.yaml")
}

func findConfigFile() string {
	home, _ := os.UserHomeDir()
	locations := []string{
		".icons8dl.yaml",
		".icons8dl.yml",
		filepath.Join(home, ".config", "icons8dl", "config.yaml"),
		filepath.Join(home, ".config", "icons8dl", "config.yml"),
		filepath.Join(home, ".icons8dl.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// API
	for name, raw := range map[string]string{"catalog URL": c.API.CatalogURL, "image URL": c.API.ImageURL} {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
		}
	}
	if _, err := language.Parse(c.API.Language); err != nil {
		errs = append(errs, fmt.Errorf("invalid language tag %q: %w", c.API.Language, err))
	}
	if c.API.SortBy == "" {
		errs = append(errs, errors.New("sort order is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API timeout must be positive"))
	}

	// Download
	if !slices.Contains(ValidSizes, c.Download.Size) {
		errs = append(errs, fmt.Errorf("size must be one of %v, got %d", ValidSizes, c.Download.Size))
	}
	if c.Download.Concurrency <= 0 {
		errs = append(errs, errors.New("concurrency must be positive"))
	}
	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}

	// Cache
	if c.Cache.Enabled && c.Cache.Dir == "" {
		errs = append(errs, errors.New("cache directory is required when the cache is enabled"))
	}

	// Output
	if c.Output.TargetDirectory == "" {
		errs = append(errs, errors.New("target directory is required"))
	}
	switch strings.ToLower(c.Output.MetadataFormat) {
	case "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("invalid metadata format %q", c.Output.MetadataFormat))
	}

	// Logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "warning": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags applies flags that were explicitly set on the command line.
// Keys match the long flag names.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if dir, ok := flags["target-directory"].(string); ok && dir != "" {
		c.Output.TargetDirectory = dir
	}
	if size, ok := flags["size"].(int); ok && size != 0 {
		c.Download.Size = size
	}
	if n, ok := flags["concurrency"].(int); ok && n != 0 {
		c.Download.Concurrency = n
	}
	if noCache, ok := flags["no-cache"].(bool); ok && noCache {
		c.Cache.Enabled = false
	}
	if save, ok := flags["save-metadata"].(bool); ok && save {
		c.Output.SaveMetadata = true
	}
	if format, ok := flags["metadata-format"].(string); ok && format != "" {
		c.Output.MetadataFormat = format
	}
	if lang, ok := flags["language"].(string); ok && lang != "" {
		c.API.Language = lang
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
	if notify, ok := flags["notify"].(bool); ok && notify {
		c.Notifications.Enabled = true
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: command line flags > environment > .env files > config file > defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files only populate variables that are not already set
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".icons8dl.env"))
	}

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg.MergeCommandLineFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
