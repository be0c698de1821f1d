package commands

import (
	"time"

	"github.com/spf13/cobra"
)

func fireCmd() *cobra.Command {
	var pulse time.Duration
	cmd := &cobra.Command{
		Use:   "fire",
		Short: "Pulse the marker relay once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pulse == 0 {
				return ctl.TestFire()
			}
			return ctl.ManualFire(pulse)
		},
	}
	cmd.Flags().DurationVar(&pulse, "pulse", 0, "pulse length (default from config, floored at the minimum)")
	return cmd
}
