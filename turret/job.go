package turret

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jaymaker27/vector-paint/coord"
	"github.com/jaymaker27/vector-paint/paint"
)

// JobState is the executor state machine: Idle -> Running ->
// {Completed | Aborted | Faulted}.
type JobState string

const (
	JobIdle      JobState = "idle"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobAborted   JobState = "aborted"
	JobFaulted   JobState = "faulted"
)

// JobResult reports how a run ended. Pass and Point are the indices of
// the first point NOT executed when a run terminates early; PointsDone
// counts points fully executed (moved and fired).
type JobResult struct {
	RunID      uuid.UUID
	State      JobState
	Pass       int
	Point      int
	PointsDone int
	Err        error
}

// RequestAbort asks the running job to stop before its next point.
// Safe to call from any goroutine; this flag is the only cross-thread
// signal into the executor.
func (c *Controller) RequestAbort() {
	c.abort.Store(true)
	log.Println("turret: abort requested")
}

func (c *Controller) setJobState(s JobState) {
	c.stateMu.Lock()
	c.jobState = s
	c.stateMu.Unlock()
}

// RunJob executes every enabled pass of a job: move to each normalized
// point (soft-limit clamped around the forward reference), fire, dwell.
// Exactly one job runs at a time; it owns the motion resource for its
// whole duration.
func (c *Controller) RunJob(job *paint.Job) JobResult {
	return c.run(job, -1)
}

// RunPass executes a single pass of a job, for diagnostics.
func (c *Controller) RunPass(job *paint.Job, index int) JobResult {
	if job != nil {
		if _, err := job.Pass(index); err != nil {
			log.Printf("turret: run pass: invalid index %d", index)
			return JobResult{RunID: uuid.New(), State: JobIdle, Err: ErrInvalidJob}
		}
	}
	return c.run(job, index)
}

func (c *Controller) run(job *paint.Job, only int) JobResult {
	res := JobResult{RunID: uuid.New(), State: JobIdle}
	c.abort.Store(false) // clear any stale abort

	if err := job.Validate(); err != nil {
		log.Printf("turret: job %s: nothing to execute: %v", res.RunID, err)
		res.Err = ErrInvalidJob
		return res
	}
	if !c.ready() {
		res.Err = ErrNotReady
		return res
	}

	c.motionMu.Lock()
	defer c.motionMu.Unlock()

	if c.EStopPressed() {
		log.Printf("turret: job %s: refused, E-STOP pressed", res.RunID)
		res.Err = ErrEStop
		return res
	}
	xOK, yOK := c.LimitStatus()
	if !xOK || !yOK {
		log.Printf("turret: job %s: refused, limit tripped (x_ok=%t y_ok=%t)", res.RunID, xOK, yOK)
		res.Err = ErrLimitTripped
		return res
	}

	log.Printf("turret: job %s: starting, mode=%q source=%q passes=%d",
		res.RunID, job.Mode, job.Source, len(job.Passes))

	c.setJobState(JobRunning)
	defer func() { c.setJobState(res.State) }()

	log.Printf("turret: job %s: moving to forward reference", res.RunID)
	if _, err := c.gotoForward(); err != nil {
		res.State = JobFaulted
		res.Err = err
		return res
	}

	for idx, p := range job.Passes {
		if only >= 0 && idx != only {
			continue
		}
		if !p.Enabled {
			log.Printf("turret: job %s: pass %d %q disabled, skipping", res.RunID, idx, p.Label)
			continue
		}
		if len(p.Points) == 0 {
			log.Printf("turret: job %s: pass %d %q has no points", res.RunID, idx, p.Label)
			continue
		}
		log.Printf("turret: job %s: pass %d: label=%q points=%d color=%s",
			res.RunID, idx, p.Label, len(p.Points), p.Color)

		for i, pt := range p.Points {
			res.Pass, res.Point = idx, i

			if c.abort.Load() {
				log.Printf("turret: job %s: aborted at pass %d point %d/%d", res.RunID, idx, i, len(p.Points))
				res.State = JobAborted
				res.Err = ErrAborted
				return res
			}
			if c.EStopPressed() {
				log.Printf("turret: job %s: E-STOP at pass %d point %d/%d", res.RunID, idx, i, len(p.Points))
				res.State = JobFaulted
				res.Err = ErrEStop
				return res
			}
			if !paint.PointUsable(pt) {
				log.Printf("turret: job %s: pass %d point %d unusable, skipping", res.RunID, idx, i)
				continue
			}

			if err := c.moveToNormalized(pt[0], pt[1]); err != nil {
				if errors.Is(err, ErrSoftLimit) {
					// Clamped to nothing: stay put and still mark the
					// point from here.
					log.Printf("turret: job %s: pass %d point %d clamped by soft limits", res.RunID, idx, i)
				} else {
					res.State = JobFaulted
					res.Err = err
					return res
				}
			}
			if err := c.fire(c.cfg.FirePulse); err != nil {
				res.State = JobFaulted
				res.Err = err
				return res
			}
			res.PointsDone++
			time.Sleep(c.cfg.PointDwell)
		}
	}

	log.Printf("turret: job %s: completed, %d points", res.RunID, res.PointsDone)
	res.State = JobCompleted
	res.Pass, res.Point = 0, 0
	return res
}

// moveToNormalized maps normalized image coordinates (0..1) onto steps
// around the forward reference, with (0.5, 0.5) landing exactly on the
// reference pose, and jogs there relative to the current position.
// Caller must hold motionMu.
func (c *Controller) moveToNormalized(xn, yn float64) error {
	xn = clamp01(xn)
	yn = clamp01(yn)

	off := coord.Point{
		X: int64((xn - 0.5) * 2 * float64(c.cfg.MaxOffsetStepsX)),
		Y: int64((yn - 0.5) * 2 * float64(c.cfg.MaxOffsetStepsY)),
	}

	c.stateMu.Lock()
	base := c.fwd
	cur := c.pos
	c.stateMu.Unlock()

	target := base.Add(off)
	delta := target.Sub(cur)
	log.Printf("turret: aim: (%.3f,%.3f) -> target (%d,%d), delta (%d,%d)",
		xn, yn, target.X, target.Y, delta.X, delta.Y)

	if delta.IsZero() {
		return nil
	}
	_, err := c.jogXY(delta.X, delta.Y, 1.0, false)
	return err
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
