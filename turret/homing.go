package turret

import (
	"log"
	"time"
)

// HomeState is the terminal state of a single-axis homing attempt.
type HomeState string

const (
	HomeZeroed  HomeState = "zeroed"
	HomeAborted HomeState = "aborted"
	HomeSkipped HomeState = "skipped"
)

// AxisHomeResult reports one axis of a homing run. Steps counts every
// pulse issued across the clear/seek/back-off phases. The ledger is
// zeroed only on HomeZeroed; an aborted attempt leaves it untouched.
type AxisHomeResult struct {
	Axis  Axis
	State HomeState
	Err   error
	Steps int64
}

// HomeResult reports a HomeAll run.
type HomeResult struct {
	X AxisHomeResult
	Y AxisHomeResult
}

func (r HomeResult) Success() bool {
	return r.X.State == HomeZeroed && r.Y.State == HomeZeroed
}

// Err returns the first axis failure, if any.
func (r HomeResult) Err() error {
	if r.X.Err != nil {
		return r.X.Err
	}
	return r.Y.Err
}

// HomingOptions bound a homing run. Zero values fall back to the
// controller config.
type HomingOptions struct {
	StepPeriod time.Duration
	MaxSteps   int64
	MinBackoff int64
}

func (c *Controller) homingDefaults(opt HomingOptions) HomingOptions {
	if opt.StepPeriod == 0 {
		opt.StepPeriod = c.cfg.HomingStepPeriod
	}
	if opt.MaxSteps == 0 {
		opt.MaxSteps = c.cfg.MaxHomingSteps
	}
	if opt.MinBackoff == 0 {
		opt.MinBackoff = c.cfg.MinBackoffSteps
	}
	return opt
}

// homeAxis runs the per-axis homing sequence:
//
//	StartCheck -> ClearIfTripped -> SeekSwitch -> BackOff -> Zeroed
//
// E-STOP or an exhausted step budget aborts from any phase. Direction
// convention: high is away from home, low is toward home. Caller must
// hold motionMu.
func (c *Controller) homeAxis(a Axis, opt HomingOptions) AxisHomeResult {
	res := AxisHomeResult{Axis: a, State: HomeAborted}
	if !c.ready() {
		res.Err = ErrNotReady
		log.Printf("turret: cannot home %s: port not ready", a)
		return res
	}

	log.Printf("turret: homing axis %s", a)
	stepPin, dirPin := c.axisPins(a)
	limitPin := c.limitPin(a)

	// StartCheck
	if c.EStopPressed() {
		res.Err = ErrEStop
		log.Printf("turret: abort homing %s: E-STOP pressed at start", a)
		return res
	}

	// ClearIfTripped: already sitting on the switch, back away until
	// it releases.
	if c.limitTripped(limitPin) {
		log.Printf("turret: axis %s already on home switch, backing off to clear", a)
		c.setDirection(dirPin, true)
		var n int64
		for c.limitTripped(limitPin) {
			if c.EStopPressed() {
				res.Err = ErrEStop
				log.Printf("turret: abort homing %s: E-STOP while clearing", a)
				return res
			}
			if n >= opt.MaxSteps {
				res.Err = ErrHomingBudget
				log.Printf("turret: abort homing %s: budget exceeded while clearing", a)
				return res
			}
			c.pulse(stepPin, opt.StepPeriod)
			n++
			res.Steps++
		}
		log.Printf("turret: axis %s cleared home switch after %d steps", a, n)
	}

	// SeekSwitch: run toward home until the switch trips.
	c.setDirection(dirPin, false)
	var n int64
	for !c.limitTripped(limitPin) {
		if c.EStopPressed() {
			res.Err = ErrEStop
			log.Printf("turret: abort homing %s: E-STOP while seeking", a)
			return res
		}
		if n >= opt.MaxSteps {
			res.Err = ErrHomingBudget
			log.Printf("turret: abort homing %s: switch never found within %d steps", a, opt.MaxSteps)
			return res
		}
		c.pulse(stepPin, opt.StepPeriod)
		n++
		res.Steps++
	}
	log.Printf("turret: axis %s hit home after %d steps", a, n)

	// BackOff: leave the switch, at least MinBackoff steps, bounded by
	// half the seek budget.
	c.setDirection(dirPin, true)
	var back int64
	for (c.limitTripped(limitPin) || back < opt.MinBackoff) && back < opt.MaxSteps/2 {
		if c.EStopPressed() {
			res.Err = ErrEStop
			log.Printf("turret: abort homing %s: E-STOP while backing off", a)
			return res
		}
		c.pulse(stepPin, opt.StepPeriod)
		back++
		res.Steps++
	}
	if c.limitTripped(limitPin) {
		log.Printf("turret: WARNING: axis %s still tripped after %d back-off steps", a, back)
	} else {
		log.Printf("turret: axis %s cleared switch after %d back-off steps", a, back)
	}

	// Zeroed
	c.setPosition(a, 0)
	res.State = HomeZeroed
	log.Printf("turret: axis %s homed and zeroed", a)
	return res
}

// HomeAll homes X then Y sequentially on the single motion resource.
// An E-STOP abort on X stops the run; a non-safety X fault proceeds to
// Y only when ContinueOnFault is set.
func (c *Controller) HomeAll() HomeResult {
	return c.HomeAllOptions(HomingOptions{})
}

// HomeAllOptions is HomeAll with explicit bounds.
func (c *Controller) HomeAllOptions(opt HomingOptions) HomeResult {
	opt = c.homingDefaults(opt)

	c.motionMu.Lock()
	defer c.motionMu.Unlock()
	log.Println("turret: home all axes requested")

	var res HomeResult
	res.X = c.homeAxis(AxisX, opt)
	if res.X.State == HomeAborted {
		stop := res.X.Err == ErrEStop || res.X.Err == ErrNotReady || !c.cfg.ContinueOnFault
		if stop {
			res.Y = AxisHomeResult{Axis: AxisY, State: HomeSkipped, Err: res.X.Err}
			return res
		}
	}
	res.Y = c.homeAxis(AxisY, opt)
	if res.Success() {
		log.Println("turret: home all complete")
	}
	return res
}

// Calibrate is the UI "Calibrate" button: home both axes and zero the
// position counters. Existing soft-limit maxima are left alone; travel
// calibration owns those.
func (c *Controller) Calibrate() HomeResult {
	log.Println("turret: calibrate requested")
	return c.HomeAll()
}
