package turret

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaymaker27/vector-paint/gpio"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BaseStepPeriod = 20 * time.Microsecond
	cfg.HomingStepPeriod = 20 * time.Microsecond
	cfg.DirSettle = 0
	cfg.FirePulse = time.Millisecond
	cfg.MinFirePulse = 500 * time.Microsecond
	cfg.PointDwell = 0
	cfg.MaxHomingSteps = 2000
	cfg.MinBackoffSteps = 10
	cfg.DataDir = t.TempDir()
	return cfg
}

// newTestController wires a controller to a Sim port with all switches
// idle: limits closed to ground (low), E-STOP open (pulled up high).
func newTestController(t *testing.T) (*Controller, *gpio.Sim, Config) {
	t.Helper()
	cfg := testConfig(t)
	sim := gpio.NewSim()
	c, err := New(sim, cfg)
	require.NoError(t, err)
	sim.Set(cfg.Pins.LimitX, gpio.Low)
	sim.Set(cfg.Pins.LimitY, gpio.Low)
	sim.Set(cfg.Pins.EStop, gpio.High)
	return c, sim, cfg
}

// axisTracker mirrors physical axis positions by watching step pulses
// and the direction lines, so tests can script limit switches that
// trip as a function of real motion. Direction high moves away from
// home (increasing); the home switch region is pos <= 0.
type axisTracker struct {
	sim *gpio.Sim
	cfg Config

	mu   sync.Mutex
	posX int64
	posY int64

	extraWrite func(p gpio.Pin, l gpio.Level)
}

func trackAxes(sim *gpio.Sim, cfg Config, startX, startY int64) *axisTracker {
	tr := &axisTracker{sim: sim, cfg: cfg, posX: startX, posY: startY}
	sim.OnWrite(func(p gpio.Pin, l gpio.Level) {
		if l == gpio.High {
			switch p {
			case cfg.Pins.StepX:
				d := int64(-1)
				if sim.Level(cfg.Pins.DirX) == gpio.High {
					d = 1
				}
				tr.mu.Lock()
				tr.posX += d
				tr.mu.Unlock()
			case cfg.Pins.StepY:
				d := int64(-1)
				if sim.Level(cfg.Pins.DirY) == gpio.High {
					d = 1
				}
				tr.mu.Lock()
				tr.posY += d
				tr.mu.Unlock()
			}
		}
		tr.mu.Lock()
		fn := tr.extraWrite
		tr.mu.Unlock()
		if fn != nil {
			fn(p, l)
		}
	})
	return tr
}

// homeSwitches scripts both limit inputs from the tracked positions.
func (tr *axisTracker) homeSwitches() {
	tr.sim.OnRead(tr.cfg.Pins.LimitX, func() gpio.Level {
		return gpio.Level(tr.X() <= 0)
	})
	tr.sim.OnRead(tr.cfg.Pins.LimitY, func() gpio.Level {
		return gpio.Level(tr.Y() <= 0)
	})
}

func (tr *axisTracker) X() int64 {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.posX
}

func (tr *axisTracker) Y() int64 {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.posY
}

func (tr *axisTracker) onWrite(fn func(p gpio.Pin, l gpio.Level)) {
	tr.mu.Lock()
	tr.extraWrite = fn
	tr.mu.Unlock()
}

// countRises counts rising edges on one pin.
type edgeCounter struct {
	mu sync.Mutex
	n  int64
}

func (e *edgeCounter) Count() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.n
}

func countRises(sim *gpio.Sim, pin gpio.Pin) *edgeCounter {
	e := &edgeCounter{}
	sim.OnWrite(func(p gpio.Pin, l gpio.Level) {
		if p == pin && l == gpio.High {
			e.mu.Lock()
			e.n++
			e.mu.Unlock()
		}
	})
	return e
}
