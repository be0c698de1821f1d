package commands

import (
	"github.com/spf13/cobra"
)

// status: one JSON snapshot of safety, position and mode flags.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report safety state, position and mode flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(ctl.Status())
		},
	}
}

// snapshot: undebounced pin levels, for checking wiring and polarity.
func snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Read raw E-STOP and limit switch levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := ctl.RawSnapshot()
			if err != nil {
				return err
			}
			return printJSON(raw)
		},
	}
}

func selftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the bench sanity pass: status, raw levels, test fire, small jog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctl.SelfTest()
		},
	}
}
