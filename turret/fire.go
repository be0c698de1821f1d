package turret

import (
	"log"
	"time"

	"github.com/jaymaker27/vector-paint/gpio"
)

// ManualFire pulses the marker relay for max(MinFirePulse, d). The
// pulse is short by design and never interrupted mid-flight; the line
// is deasserted on every exit path.
func (c *Controller) ManualFire(d time.Duration) error {
	if !c.ready() {
		return ErrNotReady
	}
	c.motionMu.Lock()
	defer c.motionMu.Unlock()
	return c.fire(d)
}

// fire is ManualFire with motionMu already held.
func (c *Controller) fire(d time.Duration) error {
	if c.EStopPressed() {
		log.Println("turret: fire refused: E-STOP pressed")
		return ErrEStop
	}
	if d < c.cfg.MinFirePulse {
		d = c.cfg.MinFirePulse
	}

	c.stateMu.Lock()
	suppressed := c.suppress
	c.stateMu.Unlock()
	if suppressed {
		log.Printf("turret: fire suppressed: would pulse %v", d)
		return nil
	}

	log.Printf("turret: fire: pulse %v", d)
	if err := c.port.Write(c.cfg.Pins.Fire, gpio.High); err != nil {
		return err
	}
	defer c.port.Write(c.cfg.Pins.Fire, gpio.Low)
	time.Sleep(d)
	return nil
}

// TestFire is the UI "Test Fire" button: one default-length pulse.
func (c *Controller) TestFire() error {
	return c.ManualFire(c.cfg.FirePulse)
}

// SetFireSuppressed toggles bench mode: fire commands are logged and
// reported but the relay pin is never driven.
func (c *Controller) SetFireSuppressed(on bool) {
	c.stateMu.Lock()
	c.suppress = on
	c.stateMu.Unlock()
	log.Println("turret: fire suppression:", on)
}
