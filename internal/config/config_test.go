package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Profile != "default" {
		t.Errorf("Profile = %q, want default", cfg.Profile)
	}
	if cfg.Source.DebounceSeconds != 3 {
		t.Errorf("DebounceSeconds = %d, want 3", cfg.Source.DebounceSeconds)
	}
	if cfg.Database.Dir != "data" {
		t.Errorf("Database.Dir = %q, want data", cfg.Database.Dir)
	}
	if got := cfg.DatabasePath(); got != filepath.Join("data", "default.json") {
		t.Errorf("DatabasePath = %q", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fightlog.yaml")
	body := `
profile: mage
actor: Thrall
source:
  export_path: /tmp/export.json
  debounce_seconds: 5
database:
  dir: /var/lib/fightlog
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FIGHTLOG_PROFILE", "warlock")
	t.Setenv("FIGHTLOG_DEBOUNCE_SECONDS", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Profile != "warlock" {
		t.Errorf("env should override file: Profile = %q", cfg.Profile)
	}
	if cfg.Actor != "Thrall" {
		t.Errorf("Actor = %q, want Thrall", cfg.Actor)
	}
	if cfg.Source.DebounceSeconds != 7 {
		t.Errorf("DebounceSeconds = %d, want 7", cfg.Source.DebounceSeconds)
	}
	if got := cfg.DatabasePath(); got != filepath.Join("/var/lib/fightlog", "warlock.json") {
		t.Errorf("DatabasePath = %q", got)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Source.DebounceSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero debounce should not validate")
	}

	cfg.Source.DebounceSeconds = 3
	cfg.Journal.RetentionDays = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative retention should not validate")
	}
}
