package turret

import (
	"log"
	"math"

	"github.com/jaymaker27/vector-paint/coord"
)

// JogXY moves the turret by the requested step deltas. Positive steps
// drive the direction line high.
//
// Unless bypassSoftLimits is set, the request is clamped so the final
// position stays inside the soft limits; a non-zero request that clamps
// to zero on both axes is rejected with ErrSoftLimit. Bypass (used only
// for tracking corrections) skips the clamp but never the E-STOP or
// hardware limit checks.
func (c *Controller) JogXY(dx, dy int64, speedScale float64, bypassSoftLimits bool) (coord.Point, error) {
	if !c.ready() {
		return coord.Point{}, ErrNotReady
	}
	c.motionMu.Lock()
	defer c.motionMu.Unlock()
	return c.jogXY(dx, dy, speedScale, bypassSoftLimits)
}

// jogXY is JogXY with motionMu already held.
func (c *Controller) jogXY(dx, dy int64, speedScale float64, bypassSoftLimits bool) (coord.Point, error) {
	if c.EStopPressed() {
		log.Println("turret: jog refused: E-STOP pressed")
		return coord.Point{}, ErrEStop
	}
	xOK, yOK := c.LimitStatus()
	if !xOK || !yOK {
		// A tripped limit on either axis blocks both axes. Deliberate
		// conservative policy, not an oversight.
		log.Printf("turret: jog refused: limit tripped (x_ok=%t y_ok=%t)", xOK, yOK)
		return coord.Point{}, ErrLimitTripped
	}

	c.stateMu.Lock()
	p := c.profile
	c.stateMu.Unlock()
	periodX := scalePeriod(c.cfg.BaseStepPeriod, speedScale*p.XSpeedScale)
	periodY := scalePeriod(c.cfg.BaseStepPeriod, speedScale*p.YSpeedScale)

	req := coord.Point{X: dx, Y: dy}
	move := req
	if !bypassSoftLimits {
		move = c.clampDelta(req)
		if move.IsZero() && !req.IsZero() {
			log.Printf("turret: jog: request (%d,%d) would exceed soft limits, ignored", dx, dy)
			return coord.Point{}, ErrSoftLimit
		}
	}

	log.Printf("turret: jog: requested (%d,%d) -> move (%d,%d), bypass=%t",
		req.X, req.Y, move.X, move.Y, bypassSoftLimits)

	var moved coord.Point
	var err error
	if move.X != 0 {
		moved.X, err = c.moveAxis(AxisX, move.X, periodX)
		if err != nil {
			return moved, err
		}
	}
	if move.Y != 0 {
		moved.Y, err = c.moveAxis(AxisY, move.Y, periodY)
	}
	return moved, err
}

// Jog is the manual jog entry used by UI buttons: degrees and a speed
// value rather than raw steps. Degrees map through JogStepsPerDeg with
// a DefaultJogSteps floor so small nudges stay visible.
func (c *Controller) Jog(a Axis, direction int, degrees, speed float64) (coord.Point, error) {
	dir := int64(1)
	if direction < 0 {
		dir = -1
	}
	if math.IsNaN(degrees) || degrees == 0 {
		degrees = 2
	}
	steps := int64(math.Abs(degrees) * c.cfg.JogStepsPerDeg)
	if steps < c.cfg.DefaultJogSteps {
		steps = c.cfg.DefaultJogSteps
	}
	steps *= dir

	if math.IsNaN(speed) || speed <= 0 {
		speed = 1000
	}
	scale := c.cfg.BaseSpeed / math.Max(1, speed)

	log.Printf("turret: jog: axis=%s dir=%d steps=%d speed=%.1f scale=%.3f", a, dir, steps, speed, scale)

	if a == AxisX {
		return c.JogXY(steps, 0, scale, false)
	}
	return c.JogXY(0, steps, scale, false)
}
