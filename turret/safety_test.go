package turret

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaymaker27/vector-paint/gpio"
)

func TestEStopPolarity(t *testing.T) {
	c, sim, cfg := newTestController(t)

	// open (pulled up high) = not pressed
	sim.Set(cfg.Pins.EStop, gpio.High)
	assert.False(t, c.EStopPressed())

	// closed to ground = pressed
	sim.Set(cfg.Pins.EStop, gpio.Low)
	assert.True(t, c.EStopPressed())
}

func TestLimitPolarity(t *testing.T) {
	c, sim, cfg := newTestController(t)

	// NC switches: closed to ground (low) is the idle, healthy state
	sim.Set(cfg.Pins.LimitX, gpio.Low)
	sim.Set(cfg.Pins.LimitY, gpio.Low)
	xOK, yOK := c.LimitStatus()
	assert.True(t, xOK)
	assert.True(t, yOK)
	assert.False(t, c.SafeMode())

	// open circuit (pulled up high) means TRIPPED, not active
	sim.Set(cfg.Pins.LimitX, gpio.High)
	xOK, yOK = c.LimitStatus()
	assert.False(t, xOK)
	assert.True(t, yOK)
	assert.True(t, c.SafeMode())

	sim.Set(cfg.Pins.LimitX, gpio.Low)
	sim.Set(cfg.Pins.LimitY, gpio.High)
	xOK, yOK = c.LimitStatus()
	assert.True(t, xOK)
	assert.False(t, yOK)
	assert.True(t, c.SafeMode())
}

func TestEStopDebounceRejectsGlitch(t *testing.T) {
	c, sim, cfg := newTestController(t)

	// one low sample in the window is a glitch, not a press
	n := 0
	sim.OnRead(cfg.Pins.EStop, func() gpio.Level {
		n++
		if n == 1 {
			return gpio.Low
		}
		return gpio.High
	})
	assert.False(t, c.EStopPressed())

	// three of five low is a press
	n = 0
	sim.OnRead(cfg.Pins.EStop, func() gpio.Level {
		n++
		return gpio.Level(n%2 == 0) // samples 1,3,5 low
	})
	assert.True(t, c.EStopPressed())
}

func TestLimitDebounceRejectsGlitch(t *testing.T) {
	c, sim, cfg := newTestController(t)

	n := 0
	sim.OnRead(cfg.Pins.LimitX, func() gpio.Level {
		n++
		return gpio.Level(n == 1) // single high sample
	})
	xOK, _ := c.LimitStatus()
	assert.True(t, xOK)
}

func TestSafetyWithoutPort(t *testing.T) {
	c, err := New(nil, testConfig(t))
	assert.NoError(t, err)

	assert.False(t, c.EStopPressed())
	s := c.Status()
	assert.False(t, s.Ready)
	assert.True(t, s.SafeMode)

	_, err = c.JogXY(10, 0, 1, false)
	assert.Equal(t, ErrNotReady, err)
	assert.Equal(t, ErrNotReady, c.ManualFire(0))
	_, err = c.RawSnapshot()
	assert.Equal(t, ErrNotReady, err)
}
