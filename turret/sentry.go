package turret

import (
	"log"
	"math"
)

// CorrectToward maps a normalized target coordinate to a small
// corrective jog. Inputs are clamped to [0,1]; the error is measured
// from frame center (0.5, 0.5). Corrections inside the deadzone are
// zero; survivors are scaled by the axis gain and inversion, then
// floored: anything below MinStep is discarded as noise.
//
// The Y error is negated once before gain: image Y grows downward,
// turret Y grows upward.
func (c *Controller) CorrectToward(xn, yn float64) (stepX, stepY int64) {
	xn = clamp01(xn)
	yn = clamp01(yn)

	c.stateMu.Lock()
	ix, iy := c.invertX, c.invertY
	c.stateMu.Unlock()
	tp := c.cfg.Tracking

	dx := xn - 0.5
	dy := yn - 0.5

	if math.Abs(dx) > tp.Deadzone {
		stepX = int64(math.Round(dx * tp.GainX * float64(ix)))
	}
	if math.Abs(dy) > tp.Deadzone {
		stepY = int64(math.Round(-dy * tp.GainY * float64(iy)))
	}

	if abs64(stepX) < tp.MinStep {
		stepX = 0
	}
	if abs64(stepY) < tp.MinStep {
		stepY = 0
	}
	return stepX, stepY
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// SentryFireAt handles one vision target estimate. Tracking must be
// enabled for anything to happen; the corrective jog respects soft
// limits; firing additionally requires the autofire flag and a clear
// safety state.
func (c *Controller) SentryFireAt(xn, yn float64) error {
	c.stateMu.Lock()
	tracking := c.tracking
	autofire := c.autofire
	c.stateMu.Unlock()

	if !tracking {
		log.Println("turret: sentry: tracking disabled, ignoring target")
		return nil
	}

	stepX, stepY := c.CorrectToward(xn, yn)
	if stepX != 0 || stepY != 0 {
		log.Printf("turret: sentry: tracking jog X=%d Y=%d", stepX, stepY)
		if _, err := c.JogXY(stepX, stepY, 1.2, false); err != nil && err != ErrSoftLimit {
			return err
		}
	}

	if !autofire {
		log.Println("turret: sentry: autofire disabled, not firing")
		return nil
	}
	if !c.ready() {
		return ErrNotReady
	}
	if c.EStopPressed() {
		log.Println("turret: sentry: E-STOP pressed, not firing")
		return ErrEStop
	}
	log.Println("turret: sentry: firing")
	return c.ManualFire(c.cfg.FirePulse)
}

// SentryScanStep sweeps one small horizontal step while searching for a
// target. direction >= 0 scans right, negative scans left.
func (c *Controller) SentryScanStep(direction int) error {
	dir := int64(1)
	if direction < 0 {
		dir = -1
	}
	steps := c.cfg.DefaultJogSteps / 4
	if steps < 5 {
		steps = 5
	}
	steps *= dir
	log.Printf("turret: sentry: scan step %d", steps)
	_, err := c.JogXY(steps, 0, 1.5, false)
	return err
}

// SetTrackingEnabled gates target corrections.
func (c *Controller) SetTrackingEnabled(on bool) {
	c.stateMu.Lock()
	c.tracking = on
	c.stateMu.Unlock()
	log.Println("turret: tracking enabled:", on)
}

// SetAutofireEnabled gates automatic firing on a tracked target.
func (c *Controller) SetAutofireEnabled(on bool) {
	c.stateMu.Lock()
	c.autofire = on
	c.stateMu.Unlock()
	log.Println("turret: autofire enabled:", on)
}

// SetSentryMode flags sentry mode for the UI and status reporting.
func (c *Controller) SetSentryMode(on bool) {
	c.stateMu.Lock()
	c.sentry = on
	c.stateMu.Unlock()
	log.Println("turret: sentry mode enabled:", on)
}

// SetTrackingInversion flips tracking directions per axis and persists
// the choice. A nil argument leaves that axis unchanged.
func (c *Controller) SetTrackingInversion(invertX, invertY *bool) error {
	c.stateMu.Lock()
	if invertX != nil {
		c.invertX = 1
		if *invertX {
			c.invertX = -1
		}
	}
	if invertY != nil {
		c.invertY = 1
		if *invertY {
			c.invertY = -1
		}
	}
	ix, iy := c.invertX < 0, c.invertY < 0
	c.stateMu.Unlock()

	log.Printf("turret: tracking inversion: x=%t y=%t", ix, iy)
	return c.saveTrackingInversion(ix, iy)
}

// TrackingInversion reports the current per-axis multipliers (±1).
func (c *Controller) TrackingInversion() (x, y int64) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.invertX, c.invertY
}
