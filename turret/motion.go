package turret

import (
	"log"
	"math"
	"time"

	"github.com/jaymaker27/vector-paint/coord"
	"github.com/jaymaker27/vector-paint/gpio"
)

// pulse emits one step pulse: line high for half the period, low for
// the rest. This is deliberate synchronous bit-banging; the calling
// goroutine blocks for the full period. The line ends low on every
// path.
func (c *Controller) pulse(pin gpio.Pin, period time.Duration) {
	half := period / 2
	_ = c.port.Write(pin, gpio.High)
	time.Sleep(half)
	_ = c.port.Write(pin, gpio.Low)
	time.Sleep(period - half)
}

// setDirection latches the direction line. Positive steps drive the
// line high; the settle pause must elapse before the first pulse.
func (c *Controller) setDirection(pin gpio.Pin, positive bool) {
	_ = c.port.Write(pin, gpio.Level(positive))
	time.Sleep(c.cfg.DirSettle)
}

// moveAxis issues |steps| pulses on one axis, re-polling E-STOP before
// every pulse, and credits the ledger with the signed count actually
// issued. It returns that signed count plus ErrEStop when interrupted.
// Caller must hold motionMu.
func (c *Controller) moveAxis(a Axis, steps int64, period time.Duration) (int64, error) {
	if !c.ready() {
		return 0, ErrNotReady
	}
	if steps == 0 {
		return 0, nil
	}
	if c.EStopPressed() {
		log.Printf("turret: move %s: refused, E-STOP pressed at start", a)
		return 0, ErrEStop
	}

	stepPin, dirPin := c.axisPins(a)
	c.setDirection(dirPin, steps > 0)

	total := steps
	if total < 0 {
		total = -total
	}

	var done int64
	var err error
	for i := int64(0); i < total; i++ {
		if c.EStopPressed() {
			log.Printf("turret: move %s: interrupted by E-STOP at step %d/%d", a, i, total)
			err = ErrEStop
			break
		}
		c.pulse(stepPin, period)
		done++
	}

	delta := done
	if steps < 0 {
		delta = -done
	}
	c.stateMu.Lock()
	if a == AxisX {
		c.pos.X += delta
	} else {
		c.pos.Y += delta
	}
	c.stateMu.Unlock()
	return delta, err
}

// scalePeriod applies a speed scale to the base step period, clamped
// to [0.1, 10]. Larger scale means slower motion.
func scalePeriod(base time.Duration, scale float64) time.Duration {
	if scale < 0.1 {
		scale = 0.1
	}
	if scale > 10 {
		scale = 10
	}
	return time.Duration(float64(base) * scale)
}

// Profile returns the current motion profile.
func (c *Controller) Profile() MotionProfile {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.profile
}

// SetMotionProfile adjusts per-axis speed scales, clamped to [0.1, 10].
// NaN leaves an axis unchanged.
func (c *Controller) SetMotionProfile(xScale, yScale float64) MotionProfile {
	clamp := func(v float64) float64 {
		return math.Max(0.1, math.Min(v, 10))
	}
	c.stateMu.Lock()
	if !math.IsNaN(xScale) {
		c.profile.XSpeedScale = clamp(xScale)
	}
	if !math.IsNaN(yScale) {
		c.profile.YSpeedScale = clamp(yScale)
	}
	p := c.profile
	c.stateMu.Unlock()
	log.Printf("turret: motion profile updated: %+v", p)
	return p
}

// SetMotorSpeeds maps user-facing speed values into the motion profile.
// Higher speed means a smaller delay. Speeds are floored at 1.
func (c *Controller) SetMotorSpeeds(xSpeed, ySpeed float64) MotionProfile {
	if math.IsNaN(xSpeed) || math.IsNaN(ySpeed) {
		log.Println("turret: set motor speeds: invalid values, keeping previous profile")
		return c.Profile()
	}
	xSpeed = math.Max(1, xSpeed)
	ySpeed = math.Max(1, ySpeed)
	return c.SetMotionProfile(c.cfg.BaseSpeed/xSpeed, c.cfg.BaseSpeed/ySpeed)
}

// GotoForward moves back to the stored forward reference pose.
func (c *Controller) GotoForward() (coord.Point, error) {
	if !c.ready() {
		return coord.Point{}, ErrNotReady
	}
	c.motionMu.Lock()
	defer c.motionMu.Unlock()
	return c.gotoForward()
}

// gotoForward is GotoForward with motionMu already held, for use inside
// the job executor.
func (c *Controller) gotoForward() (coord.Point, error) {
	if c.EStopPressed() {
		log.Println("turret: goto forward refused: E-STOP pressed")
		return coord.Point{}, ErrEStop
	}

	c.stateMu.Lock()
	delta := c.fwd.Sub(c.pos)
	p := c.profile
	c.stateMu.Unlock()

	var moved coord.Point
	var err error
	if delta.X != 0 {
		moved.X, err = c.moveAxis(AxisX, delta.X, scalePeriod(c.cfg.BaseStepPeriod, p.XSpeedScale))
		if err != nil {
			return moved, err
		}
	}
	if delta.Y != 0 {
		moved.Y, err = c.moveAxis(AxisY, delta.Y, scalePeriod(c.cfg.BaseStepPeriod, p.YSpeedScale))
	}
	return moved, err
}
