// Package main provides the entry point for the fightlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fightlog/cmd/fightlog/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fightlog",
		Short: "Per-encounter performance history and comparison",
		Long: `fightlog keeps a bounded history of your performance on each
encounter, fed by an external damage meter's export, and compares any two
recorded kills against each other.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", commands.DefaultConfigPath(), "config file path")

	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
