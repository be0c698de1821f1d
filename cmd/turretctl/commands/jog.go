package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaymaker27/vector-paint/turret"
)

func parseAxis(s string) (turret.Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return turret.AxisX, nil
	case "y":
		return turret.AxisY, nil
	}
	return 0, fmt.Errorf("bad axis %q (want x or y)", s)
}

// jog <axis> <degrees>: UI-style jog in degrees. Sign picks direction.
func jogCmd() *cobra.Command {
	var speed float64
	cmd := &cobra.Command{
		Use:   "jog <axis> <degrees>",
		Short: "Jog one axis by degrees (sign is direction)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := parseAxis(args[0])
			if err != nil {
				return err
			}
			deg, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bad degrees %q: %w", args[1], err)
			}
			dir := 1
			if deg < 0 {
				dir, deg = -1, -deg
			}
			moved, err := ctl.Jog(axis, dir, deg, speed)
			if err != nil {
				return err
			}
			return printJSON(moved)
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", 1000, "jog speed value (higher is faster)")
	return cmd
}

// jogxy <dx> <dy>: raw step deltas on both axes.
func jogxyCmd() *cobra.Command {
	var scale float64
	var bypass bool
	cmd := &cobra.Command{
		Use:   "jogxy <dx> <dy>",
		Short: "Jog both axes by raw step counts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dx, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("bad dx %q: %w", args[0], err)
			}
			dy, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("bad dy %q: %w", args[1], err)
			}
			moved, err := ctl.JogXY(dx, dy, scale, bypass)
			if err != nil {
				return err
			}
			return printJSON(moved)
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "speed scale (larger is slower)")
	cmd.Flags().BoolVar(&bypass, "bypass-soft-limits", false, "skip the soft travel clamp (never skips E-STOP or switches)")
	return cmd
}

// speeds <x> <y>: map UI speed values into the motion profile.
func speedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speeds <x> <y>",
		Short: "Set per-axis motor speed values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad x speed %q: %w", args[0], err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bad y speed %q: %w", args[1], err)
			}
			return printJSON(ctl.SetMotorSpeeds(x, y))
		},
	}
}

// profile <x> <y>: set raw per-axis speed scales directly.
func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <x-scale> <y-scale>",
		Short: "Set per-axis speed scales directly (larger is slower)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad x scale %q: %w", args[0], err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bad y scale %q: %w", args[1], err)
			}
			return printJSON(ctl.SetMotionProfile(x, y))
		},
	}
}

// forward set|goto: manage the forward reference pose.
func forwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Manage the forward reference pose",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set",
			Short: "Store the current pose as the forward reference",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(ctl.SetCurrentAsForward())
			},
		},
		&cobra.Command{
			Use:   "goto",
			Short: "Move back to the forward reference",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				moved, err := ctl.GotoForward()
				if err != nil {
					return err
				}
				return printJSON(moved)
			},
		},
	)
	return cmd
}
