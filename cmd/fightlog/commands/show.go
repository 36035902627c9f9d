package commands

import (
	"github.com/spf13/cobra"

	"fightlog/internal/render"
	"fightlog/internal/resolver"
)

// NewSummaryCommand lists each encounter with kill count and DPS trend.
func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show-summary",
		Short: "One line per encounter: kills, latest DPS, trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			render.Summary(cmd.OutOrStdout(), e.store.Database())
			return nil
		},
	}
}

// NewListCommand prints every stored kill of every encounter.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "All encounters with every stored kill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			render.List(cmd.OutOrStdout(), e.store.Database())
			return nil
		},
	}
}

// NewShowCommand prints one kill in full.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <fightRef>",
		Short: "Show one kill (name, name-N or name-date)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			res, err := resolver.Resolve(e.store.Database(), args[0])
			if err != nil {
				return err
			}
			render.Show(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
