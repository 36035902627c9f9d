package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Profile string `yaml:"profile"`
	Actor   string `yaml:"actor"`
	Source  struct {
		ExportPath      string `yaml:"export_path"`
		DebounceSeconds int    `yaml:"debounce_seconds"`
	} `yaml:"source"`
	Database struct {
		Dir string `yaml:"dir"`
	} `yaml:"database"`
	Journal struct {
		SQLitePath    string `yaml:"sqlite_path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"journal"`
	MaintenanceCron string `yaml:"maintenance_cron"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults cover everything except the
// observing actor, which only the watch loop needs.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FIGHTLOG_PROFILE"); v != "" {
		cfg.Profile = v
	}
	if v := os.Getenv("FIGHTLOG_ACTOR"); v != "" {
		cfg.Actor = v
	}
	if v := os.Getenv("FIGHTLOG_EXPORT_PATH"); v != "" {
		cfg.Source.ExportPath = v
	}
	if v := os.Getenv("FIGHTLOG_DATA_DIR"); v != "" {
		cfg.Database.Dir = v
	}
	if v := os.Getenv("FIGHTLOG_JOURNAL_PATH"); v != "" {
		cfg.Journal.SQLitePath = v
	}
	if v := os.Getenv("FIGHTLOG_DEBOUNCE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Source.DebounceSeconds = n
		}
	}

	// Defaults
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	if cfg.Source.ExportPath == "" {
		cfg.Source.ExportPath = "data/meter_export.json"
	}
	if cfg.Source.DebounceSeconds == 0 {
		cfg.Source.DebounceSeconds = 3
	}
	if cfg.Database.Dir == "" {
		cfg.Database.Dir = "data"
	}
	if cfg.Journal.RetentionDays == 0 {
		cfg.Journal.RetentionDays = 180
	}
	if cfg.MaintenanceCron == "" {
		cfg.MaintenanceCron = "0 0 4 * * *"
	}

	return cfg, nil
}

// DatabasePath returns the per-profile database file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Profile+".json")
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.Profile == "" {
		return fmt.Errorf("profile is required")
	}
	if c.Source.DebounceSeconds <= 0 {
		return fmt.Errorf("source.debounce_seconds must be positive")
	}
	if c.Journal.RetentionDays < 0 {
		return fmt.Errorf("journal.retention_days must not be negative")
	}
	return nil
}
