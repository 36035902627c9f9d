package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fightlog/internal/render"
)

// NewDeleteCommand removes one stored kill.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <fightRef>",
		Short: "Delete one stored kill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			res, err := e.store.Delete(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s #%d (%s)\n",
				res.Encounter, res.Index, render.ShortDate(res.Snapshot.Date))
			return nil
		},
	}
}
