// Package config holds the YAML-backed application configuration shared by
// the CLI commands and the feed server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/handball-tv/internal/schedule"
	"github.com/pfrederiksen/handball-tv/internal/scraper"
)

// Config is the top-level application configuration. Locale tables (weekday
// and month names) are deliberately not configurable here: they define what
// the parser is, not how a deployment tunes it.
type Config struct {
	// SourceURL is the schedule page to scrape.
	SourceURL string `yaml:"source_url" json:"source_url"`

	// UserAgent identifies the scraper to the site.
	UserAgent string `yaml:"user_agent" json:"user_agent"`

	// FetchTimeoutSeconds bounds one render attempt, not the whole run.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`

	// DurationMinutes is the assumed match slot length; the page only
	// prints start times.
	DurationMinutes int `yaml:"duration_minutes" json:"duration_minutes"`

	// BaseYear pins the working year for the first date header. Zero means
	// the current year; set it when regenerating feeds from saved input.
	BaseYear int `yaml:"base_year,omitempty" json:"base_year,omitempty"`

	// CalendarName is the display name clients show for the feed.
	CalendarName string `yaml:"calendar_name" json:"calendar_name"`

	// Channels is the dictionary of recognized channel names.
	Channels []string `yaml:"channels" json:"channels"`

	// AllowChannels, when non-empty, drops events whose channel resolved
	// outside the list or not at all.
	AllowChannels []string `yaml:"allow_channels,omitempty" json:"allow_channels,omitempty"`

	// FooterMarkers end meaningful content when they appear in a line.
	FooterMarkers []string `yaml:"footer_markers" json:"footer_markers"`

	// MaxBlockLines caps content lines per kick-off block.
	MaxBlockLines int `yaml:"max_block_lines" json:"max_block_lines"`

	// DataDir is where the server keeps the last good feed and snapshot.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Listen is the HTTP listen address for serve mode.
	Listen string `yaml:"listen" json:"listen"`

	// RefreshCron is the serve-mode regeneration schedule.
	RefreshCron string `yaml:"refresh" json:"refresh"`
}

// Default returns the in-memory default configuration, matching the Danish
// federation page.
func Default() *Config {
	opts := schedule.DefaultOptions()
	return &Config{
		SourceURL:           scraper.ScheduleURL,
		UserAgent:           scraper.UserAgent,
		FetchTimeoutSeconds: int(scraper.Timeout / time.Second),
		DurationMinutes:     int(opts.Duration / time.Minute),
		CalendarName:        "Håndbold på TV",
		Channels:            opts.Channels,
		FooterMarkers:       opts.FooterMarkers,
		MaxBlockLines:       opts.MaxBlockLines,
		DataDir:             "~/.handball-tv",
		Listen:              "127.0.0.1:8080",
		RefreshCron:         "0 */6 * * *",
	}
}

// Normalize fills missing or zero values so partially filled configs from
// older versions keep working.
func (c *Config) Normalize() {
	def := Default()
	if c.SourceURL == "" {
		c.SourceURL = def.SourceURL
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if c.DurationMinutes <= 0 {
		c.DurationMinutes = def.DurationMinutes
	}
	if c.CalendarName == "" {
		c.CalendarName = def.CalendarName
	}
	if c.Channels == nil {
		c.Channels = def.Channels
	}
	if c.FooterMarkers == nil {
		c.FooterMarkers = def.FooterMarkers
	}
	if c.MaxBlockLines <= 0 {
		c.MaxBlockLines = def.MaxBlockLines
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.RefreshCron == "" {
		c.RefreshCron = def.RefreshCron
	}
}

// ScheduleOptions maps the config onto parser options.
func (c *Config) ScheduleOptions() schedule.Options {
	opts := schedule.DefaultOptions()
	opts.BaseYear = c.BaseYear
	opts.Duration = time.Duration(c.DurationMinutes) * time.Minute
	opts.Channels = c.Channels
	opts.AllowedChannels = c.AllowChannels
	opts.FooterMarkers = c.FooterMarkers
	opts.MaxBlockLines = c.MaxBlockLines
	return opts
}

// FetchTimeout returns the per-attempt render timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Load reads the configuration at path. An empty path means pure defaults
// with no file involved. A missing file is a first run: the defaults are
// written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically: temp file in the same directory, sync,
// chmod 0600, rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".handball-tv-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
