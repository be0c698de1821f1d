package commands

import (
	"github.com/spf13/cobra"
)

func homeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Home both axes against their limit switches and zero the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := ctl.HomeAll()
			if err := printJSON(res); err != nil {
				return err
			}
			return res.Err()
		},
	}
}

func calibrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "Home and zero without touching the stored travel range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := ctl.Calibrate()
			if err := printJSON(res); err != nil {
				return err
			}
			return res.Err()
		},
	}
}

// travel begin|finalize: two-step travel range calibration. Begin homes
// and unlocks the maxima; the operator jogs to the end of travel; and
// finalize pins the maxima at the current position.
func travelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "travel",
		Short: "Calibrate the soft travel range",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "begin",
			Short: "Home, zero, and clear the soft maxima",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := ctl.BeginTravelCalibration()
				if perr := printJSON(res); perr != nil {
					return perr
				}
				return err
			},
		},
		&cobra.Command{
			Use:   "finalize",
			Short: "Fix the current position as the soft maximum",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				lim, err := ctl.FinalizeTravelCalibration()
				if err != nil {
					return err
				}
				return printJSON(lim)
			},
		},
	)
	return cmd
}
