package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jaymaker27/vector-paint/paint"
	"github.com/jaymaker27/vector-paint/turret"
)

// job run <file> | job pass <file> <index>: execute a paint job
// document. Ctrl-C requests a cooperative abort; the run stops before
// its next point rather than mid-pulse.
func jobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Execute paint job documents",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "run <file>",
			Short: "Run every enabled pass of a job",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				job, err := paint.LoadFile(args[0])
				if err != nil {
					return err
				}
				return reportJob(runWithAbort(func() turret.JobResult {
					return ctl.RunJob(job)
				}))
			},
		},
		&cobra.Command{
			Use:   "pass <file> <index>",
			Short: "Run a single pass of a job",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				job, err := paint.LoadFile(args[0])
				if err != nil {
					return err
				}
				idx, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("bad pass index %q: %w", args[1], err)
				}
				return reportJob(runWithAbort(func() turret.JobResult {
					return ctl.RunPass(job, idx)
				}))
			},
		},
	)
	return cmd
}

func runWithAbort(run func() turret.JobResult) turret.JobResult {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	done := make(chan struct{})
	go func() {
		select {
		case <-sig:
			ctl.RequestAbort()
		case <-done:
		}
	}()
	res := run()
	close(done)
	return res
}

func reportJob(res turret.JobResult) error {
	if err := printJSON(res); err != nil {
		return err
	}
	return res.Err
}
