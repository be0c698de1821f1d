package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseBool(s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("bad flag value %q (want on/off as true/false)", s)
	}
	return v, nil
}

// sentry scan|fire|track|autofire|mode: the vision pipeline's surface.
func sentryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentry",
		Short: "Sentry tracking and autofire controls",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "scan <direction>",
			Short: "Sweep one horizontal scan step (+1 right, -1 left)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("bad direction %q: %w", args[0], err)
				}
				return ctl.SentryScanStep(dir)
			},
		},
		&cobra.Command{
			Use:   "fire <xn> <yn>",
			Short: "Handle one normalized target estimate: correct, then fire if armed",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				xn, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("bad xn %q: %w", args[0], err)
				}
				yn, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("bad yn %q: %w", args[1], err)
				}
				return ctl.SentryFireAt(xn, yn)
			},
		},
		&cobra.Command{
			Use:   "track <on|off>",
			Short: "Enable or disable target tracking corrections",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				on, err := parseBool(args[0])
				if err != nil {
					return err
				}
				ctl.SetTrackingEnabled(on)
				return nil
			},
		},
		&cobra.Command{
			Use:   "autofire <on|off>",
			Short: "Enable or disable firing on tracked targets",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				on, err := parseBool(args[0])
				if err != nil {
					return err
				}
				ctl.SetAutofireEnabled(on)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mode <on|off>",
			Short: "Flag sentry mode for status reporting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				on, err := parseBool(args[0])
				if err != nil {
					return err
				}
				ctl.SetSentryMode(on)
				return nil
			},
		},
	)
	return cmd
}

// invert: flip tracking correction directions per axis, persisted.
func invertCmd() *cobra.Command {
	var xFlag, yFlag string
	cmd := &cobra.Command{
		Use:   "invert",
		Short: "Set per-axis tracking inversion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ix, iy *bool
			if xFlag != "" {
				v, err := parseBool(xFlag)
				if err != nil {
					return err
				}
				ix = &v
			}
			if yFlag != "" {
				v, err := parseBool(yFlag)
				if err != nil {
					return err
				}
				iy = &v
			}
			if ix == nil && iy == nil {
				return fmt.Errorf("nothing to do: pass --x and/or --y")
			}
			return ctl.SetTrackingInversion(ix, iy)
		},
	}
	cmd.Flags().StringVar(&xFlag, "x", "", "invert X corrections (true/false)")
	cmd.Flags().StringVar(&yFlag, "y", "", "invert Y corrections (true/false)")
	return cmd
}
