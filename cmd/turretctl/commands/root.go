// Package commands implements the turretctl operator CLI.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaymaker27/vector-paint/gpio"
	"github.com/jaymaker27/vector-paint/gpio/rpihost"
	"github.com/jaymaker27/vector-paint/turret"
)

var (
	dataDir      string
	simulate     bool
	suppressFire bool

	ctl *turret.Controller
)

func Execute() error {
	root := &cobra.Command{
		Use:           "turretctl",
		Short:         "Operate the vector-paint turret from the bench",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := turret.DefaultConfig()
			if dataDir == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dataDir = filepath.Join(dir, ".vector-paint")
			}
			cfg.DataDir = dataDir

			var port gpio.Port
			if simulate {
				port = gpio.NewSim()
			} else {
				p, err := rpihost.Open()
				if err != nil {
					return fmt.Errorf("open gpio: %w", err)
				}
				port = p
			}

			c, err := turret.New(port, cfg)
			if err != nil {
				return err
			}
			if suppressFire {
				c.SetFireSuppressed(true)
			}
			ctl = c
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if ctl != nil {
				_ = ctl.Shutdown()
			}
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "preference dir (default ~/.vector-paint)")
	root.PersistentFlags().BoolVar(&simulate, "sim", false, "use a simulated port instead of the Pi header")
	root.PersistentFlags().BoolVar(&suppressFire, "suppress-fire", false, "log fire pulses without driving the relay")

	root.AddCommand(
		statusCmd(), snapshotCmd(), selftestCmd(),
		homeCmd(), calibrateCmd(), travelCmd(),
		jogCmd(), jogxyCmd(), speedsCmd(), profileCmd(), forwardCmd(),
		fireCmd(), jobCmd(), sentryCmd(), invertCmd(),
	)
	return root.Execute()
}

// printJSON is the one output convention: every verb reports a JSON
// document on stdout so the GUI relay can shell out to turretctl.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
