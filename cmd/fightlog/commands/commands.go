// Package commands implements the fightlog command surface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fightlog/internal/config"
	"fightlog/internal/history"
)

// DefaultConfigPath returns the config location, honoring the
// FIGHTLOG_CONFIG override.
func DefaultConfigPath() string {
	if v := os.Getenv("FIGHTLOG_CONFIG"); v != "" {
		return v
	}
	return "configs/fightlog.yaml"
}

// env bundles what every command needs: the validated config and the
// profile's opened database.
type env struct {
	cfg   *config.Config
	store *history.Store
}

func setup(cmd *cobra.Command) (*env, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	store, err := history.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, store: store}, nil
}
