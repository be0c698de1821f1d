package turret

import "github.com/jaymaker27/vector-paint/gpio"

// Debounce windows. E-STOP is sampled wider because a spurious trip
// there halts everything; both windows reject single-sample glitches.
const (
	estopSamples   = 5
	estopThreshold = 3
	limitSamples   = 3
	limitThreshold = 2
)

// readStable samples a line back to back and reports whether at least
// threshold samples read the given level. Pure observation, bounded by
// the sampling window, no side effects.
func (c *Controller) readStable(pin gpio.Pin, level gpio.Level, samples, threshold int) bool {
	if !c.ready() {
		return false
	}
	hits := 0
	for i := 0; i < samples; i++ {
		v, err := c.port.Read(pin)
		if err != nil {
			continue
		}
		if v == level {
			hits++
		}
	}
	return hits >= threshold
}

// EStopPressed reads the debounced E-STOP. The switch is NO to ground
// with a pull-up: open (idle) reads high, pressed reads low.
func (c *Controller) EStopPressed() bool {
	return c.readStable(c.cfg.Pins.EStop, gpio.Low, estopSamples, estopThreshold)
}

// limitTripped reads a debounced limit switch. The switches are NC to
// ground with pull-ups: closed (idle) reads low, open (tripped) floats
// high. Getting this polarity backwards drives an axis into the frame.
func (c *Controller) limitTripped(pin gpio.Pin) bool {
	return c.readStable(pin, gpio.High, limitSamples, limitThreshold)
}

// LimitStatus reports per-axis limit health; true means not tripped.
func (c *Controller) LimitStatus() (xOK, yOK bool) {
	return !c.limitTripped(c.cfg.Pins.LimitX), !c.limitTripped(c.cfg.Pins.LimitY)
}

// SafeMode is the aggregate motion-must-not-proceed condition.
func (c *Controller) SafeMode() bool {
	xOK, yOK := c.LimitStatus()
	return c.EStopPressed() || !xOK || !yOK
}
