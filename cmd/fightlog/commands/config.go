package commands

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
)

// NewConfigCommand groups runtime settings.
func NewConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Change stored settings",
	}
	cfgCmd.AddCommand(newKeepCountCommand())
	return cfgCmd
}

func newKeepCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keepcount <N>",
		Short: "How many kills to retain per encounter (affects future captures)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseKeepCount(args[0])
			if err != nil {
				return err
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := e.store.SetKeepCount(n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Keeping %d kills per encounter from now on. Longer histories shrink on their next capture.\n", n)
			return nil
		},
	}
}

// parseKeepCount coerces the argument to a positive integer; fractional
// input is truncated.
func parseKeepCount(arg string) (int, error) {
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("keepcount must be a number, got %q", arg)
	}
	n := int(math.Floor(f))
	if n <= 0 {
		return 0, fmt.Errorf("keepcount must be a positive integer, got %q", arg)
	}
	return n, nil
}
