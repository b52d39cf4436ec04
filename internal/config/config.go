package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devbush/social2csv/internal/ports"
)

// Config represents the importer configuration. It is loaded once by the
// entry point and passed explicitly into constructors; nothing reads it
// from process-wide state.
type Config struct {
	Importer           string       `yaml:"importer"`
	Window             WindowConfig `yaml:"window"`
	MaxItemsPerAccount int          `yaml:"max_items_per_account"`
	API                APIConfig    `yaml:"api"`
	Sinks              SinksConfig  `yaml:"sinks"`
}

// WindowConfig holds the optional published-time filter for content
// listings. Bounds are RFC3339 strings and only consulted when Enabled.
type WindowConfig struct {
	Enabled         bool   `yaml:"enabled"`
	PublishedAfter  string `yaml:"published_after"`
	PublishedBefore string `yaml:"published_before"`
}

// APIConfig holds metrics API client settings.
type APIConfig struct {
	Timeout string `yaml:"timeout"`
}

// SinksConfig selects where output records are appended.
type SinksConfig struct {
	ProfileCSV string `yaml:"profile_csv"`
	ContentCSV string `yaml:"content_csv"`
	Postgres   bool   `yaml:"postgres"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Importer:           "YouTube",
		MaxItemsPerAccount: 1,
		API: APIConfig{
			Timeout: "10s",
		},
		Sinks: SinksConfig{
			ProfileCSV: "./channel.csv",
			ContentCSV: "./posts.csv",
		},
	}
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes config to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values the rest of the pipeline relies on.
func (c *Config) Validate() error {
	if c.MaxItemsPerAccount < 1 {
		return fmt.Errorf("max_items_per_account must be >= 1, got %d", c.MaxItemsPerAccount)
	}
	if _, err := c.APITimeout(); err != nil {
		return err
	}
	if _, err := c.ContentWindow(); err != nil {
		return err
	}
	return nil
}

// APITimeout returns the per-call timeout for the metrics API.
func (c *Config) APITimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// ContentWindow returns the configured listing window, or nil when
// windowing is disabled.
func (c *Config) ContentWindow() (*ports.Window, error) {
	if !c.Window.Enabled {
		return nil, nil
	}

	after, err := time.Parse(time.RFC3339, c.Window.PublishedAfter)
	if err != nil {
		return nil, fmt.Errorf("invalid window.published_after %q: %w", c.Window.PublishedAfter, err)
	}
	before, err := time.Parse(time.RFC3339, c.Window.PublishedBefore)
	if err != nil {
		return nil, fmt.Errorf("invalid window.published_before %q: %w", c.Window.PublishedBefore, err)
	}

	return &ports.Window{After: after, Before: before}, nil
}

// APIKey returns the metrics API credential from the environment.
func APIKey() string {
	return os.Getenv("YOUTUBE_API_KEY")
}
