// Package config loads the progress configuration file.
//
// Configuration lives at ~/.config/progress/config.yaml (XDG_CONFIG_HOME is
// honored when set). All day-boundary decisions in the timeline use the single
// timezone configured here, so the same instant always buckets into the same
// calendar day regardless of host locale.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config is the top-level configuration for progress.
type Config struct {
	// Timezone is an IANA zone name used for all calendar-day bucketing.
	Timezone string `yaml:"timezone,omitempty"`
	// Holidays holds dates marked as holidays on the timeline grid. Entries
	// are either full dates ("2026-01-01") or recurring month-days ("01-01").
	Holidays []string `yaml:"holidays,omitempty"`
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Timezone: "UTC",
	}
}

// Dir returns the config directory for progress.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "progress"), nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "progress"), nil
}

// Load reads the config file, returning defaults when it does not exist.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644)
}

// Location resolves the configured timezone, falling back to UTC on a bad
// zone name rather than failing startup.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HolidayFunc builds a pure date → bool lookup from the configured holiday
// list. Unparseable entries are skipped.
func (c Config) HolidayFunc() func(time.Time) bool {
	fixed := make(map[string]bool)
	recurring := make(map[string]bool)
	for _, h := range c.Holidays {
		if _, err := time.Parse(dateLayout, h); err == nil {
			fixed[h] = true
			continue
		}
		if _, err := time.Parse("01-02", h); err == nil {
			recurring[h] = true
		}
	}
	return func(d time.Time) bool {
		if fixed[d.Format(dateLayout)] {
			return true
		}
		return recurring[d.Format("01-02")]
	}
}
