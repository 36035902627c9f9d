package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fightlog/internal/compare"
	"fightlog/internal/model"
	"fightlog/internal/render"
	"fightlog/internal/resolver"
)

// NewCompareCommand diffs two kills, optionally per ability.
func NewCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <fightRefA> <fightRefB> [spells]",
		Short: "Compare two kills; append 'spells' for the per-ability breakdown",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			detailed := false
			if len(args) == 3 {
				if args[2] != "spells" {
					return fmt.Errorf("unknown argument %q, did you mean 'spells'?", args[2])
				}
				detailed = true
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			db := e.store.Database()

			before, err := resolver.Resolve(db, args[0])
			if err != nil {
				return err
			}
			after, err := resolver.Resolve(db, args[1])
			if err != nil {
				return err
			}

			agg := compare.Aggregate(before.Snapshot, after.Snapshot)
			var breakdown []model.AbilityComparison
			if detailed {
				breakdown = compare.Abilities(before.Snapshot, after.Snapshot)
			}
			render.Comparison(cmd.OutOrStdout(), before, after, agg, breakdown)
			return nil
		},
	}
}
