// Package turret is the motion and safety core of the vector-paint
// turret: step-pulse generation, position bookkeeping, homing, soft
// travel limits, E-STOP/limit gating, fire control and paint-job
// execution. The GUI, HTTP relay and vision pipeline are external
// collaborators that call in through Controller methods.
package turret

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/jaymaker27/vector-paint/coord"
	"github.com/jaymaker27/vector-paint/gpio"
)

// Axis selects one of the two turret axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "X"
	}
	return "Y"
}

// MotionProfile scales the base step period per axis. Larger is slower.
type MotionProfile struct {
	XSpeedScale float64 `json:"x_speed_scale"`
	YSpeedScale float64 `json:"y_speed_scale"`
}

// Controller owns the turret hardware. All motion and fire operations
// are serialized on motionMu; the position/flags snapshot is guarded by
// stateMu so Status never blocks on an in-flight move.
type Controller struct {
	cfg  Config
	port gpio.Port

	motionMu sync.Mutex // exclusive owner of step/dir/fire lines

	stateMu  sync.Mutex
	pos      coord.Point // steps from home, mutated only by issued pulses
	fwd      coord.Point // forward reference pose
	profile  MotionProfile
	limits   SoftLimits
	invertX  int64 // ±1 tracking multipliers
	invertY  int64
	tracking bool
	autofire bool
	sentry   bool
	suppress bool // bench mode: log fire pulses without driving the pin
	jobState JobState

	abort atomic.Bool // cooperative job cancellation
}

// New wires a controller to a port and loads persisted preferences.
// A nil port yields a degraded controller whose operations fail soft
// with ErrNotReady. A pin-setup failure degrades the same way and is
// also returned.
func New(port gpio.Port, cfg Config) (*Controller, error) {
	c := &Controller{
		cfg:      cfg,
		port:     port,
		profile:  MotionProfile{XSpeedScale: 1, YSpeedScale: 1},
		limits:   SoftLimits{},
		invertX:  1,
		invertY:  1,
		jobState: JobIdle,
	}
	c.loadPrefs()

	if port == nil {
		log.Println("turret: no I/O port, running degraded")
		return c, nil
	}
	if err := c.setupPins(); err != nil {
		log.Println("turret: pin setup failed:", err)
		c.port = nil
		return c, err
	}
	log.Println("turret: I/O port initialized")
	return c, nil
}

func (c *Controller) setupPins() error {
	p := c.cfg.Pins
	outs := []gpio.Pin{p.StepX, p.DirX, p.StepY, p.DirY, p.Fire}
	for _, n := range outs {
		if err := c.port.ConfigureOutput(n, gpio.Low); err != nil {
			return err
		}
	}
	ins := []gpio.Pin{p.LimitX, p.LimitY, p.EStop}
	for _, n := range ins {
		if err := c.port.ConfigureInput(n, gpio.PullUp); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) ready() bool {
	return c.port != nil
}

func (c *Controller) axisPins(a Axis) (step, dir gpio.Pin) {
	if a == AxisX {
		return c.cfg.Pins.StepX, c.cfg.Pins.DirX
	}
	return c.cfg.Pins.StepY, c.cfg.Pins.DirY
}

func (c *Controller) limitPin(a Axis) gpio.Pin {
	if a == AxisX {
		return c.cfg.Pins.LimitX
	}
	return c.cfg.Pins.LimitY
}

// Status is the snapshot reported to the UI.
type Status struct {
	Ready      bool        `json:"ready"`
	EStop      bool        `json:"estop"`
	XLimitOK   bool        `json:"x_limit_ok"`
	YLimitOK   bool        `json:"y_limit_ok"`
	SafeMode   bool        `json:"safe_mode"`
	Pos        coord.Point `json:"pos_steps"`
	ForwardRef coord.Point `json:"forward_ref"`
	Tracking   bool        `json:"tracking"`
	Autofire   bool        `json:"autofire"`
	Sentry     bool        `json:"sentry"`
	Job        JobState    `json:"job"`
}

// Status reads live safety state and the position snapshot. When the
// port is absent the switch fields are unknown and safe mode is forced.
func (c *Controller) Status() Status {
	c.stateMu.Lock()
	s := Status{
		Pos:        c.pos,
		ForwardRef: c.fwd,
		Tracking:   c.tracking,
		Autofire:   c.autofire,
		Sentry:     c.sentry,
		Job:        c.jobState,
	}
	c.stateMu.Unlock()

	if !c.ready() {
		s.SafeMode = true
		return s
	}
	s.Ready = true
	s.EStop = c.EStopPressed()
	s.XLimitOK, s.YLimitOK = c.LimitStatus()
	s.SafeMode = s.EStop || !s.XLimitOK || !s.YLimitOK
	return s
}

// Position returns the current step position from home.
func (c *Controller) Position() coord.Point {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.pos
}

// ForwardRef returns the stored forward reference pose.
func (c *Controller) ForwardRef() coord.Point {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.fwd
}

func (c *Controller) setPosition(a Axis, v int64) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if a == AxisX {
		c.pos.X = v
	} else {
		c.pos.Y = v
	}
	log.Printf("turret: position now X=%d, Y=%d", c.pos.X, c.pos.Y)
}

// SetCurrentAsForward stores the current pose as the forward reference.
func (c *Controller) SetCurrentAsForward() coord.Point {
	c.stateMu.Lock()
	c.fwd = c.pos
	fwd := c.fwd
	c.stateMu.Unlock()
	log.Printf("turret: forward reference set at X=%d, Y=%d", fwd.X, fwd.Y)
	return fwd
}

// RawLevels is an undebounced view of the safety inputs, for verifying
// wiring and polarity from the CLI.
type RawLevels struct {
	EStop  gpio.Level `json:"estop"`
	LimitX gpio.Level `json:"limit_x"`
	LimitY gpio.Level `json:"limit_y"`
}

// RawSnapshot reads the raw levels of the E-STOP and limit lines.
func (c *Controller) RawSnapshot() (RawLevels, error) {
	var r RawLevels
	if !c.ready() {
		return r, ErrNotReady
	}
	var err error
	if r.EStop, err = c.port.Read(c.cfg.Pins.EStop); err != nil {
		return r, err
	}
	if r.LimitX, err = c.port.Read(c.cfg.Pins.LimitX); err != nil {
		return r, err
	}
	if r.LimitY, err = c.port.Read(c.cfg.Pins.LimitY); err != nil {
		return r, err
	}
	return r, nil
}

// Shutdown drives the outputs low and releases the port. The UI calls
// this on exit; the controller degrades to not-ready afterward.
func (c *Controller) Shutdown() error {
	c.motionMu.Lock()
	defer c.motionMu.Unlock()
	if !c.ready() {
		return nil
	}
	p := c.cfg.Pins
	for _, n := range []gpio.Pin{p.StepX, p.StepY, p.Fire} {
		_ = c.port.Write(n, gpio.Low)
	}
	err := c.port.Close()
	c.port = nil
	log.Println("turret: port released")
	return err
}

// SelfTest is a bench sanity pass: status, raw snapshot, a test fire
// and a small X jog out and back, skipping anything unsafe.
func (c *Controller) SelfTest() error {
	log.Println("turret: === self test start ===")
	defer log.Println("turret: === self test end ===")

	log.Printf("turret: status: %+v", c.Status())

	if raw, err := c.RawSnapshot(); err != nil {
		log.Println("turret: raw snapshot unavailable:", err)
	} else {
		log.Printf("turret: raw: estop=%s limit_x=%s limit_y=%s", raw.EStop, raw.LimitX, raw.LimitY)
	}

	if !c.ready() {
		log.Println("turret: self test: port not ready, skipping motion")
		return ErrNotReady
	}
	if c.EStopPressed() {
		log.Println("turret: self test: E-STOP pressed, skipping motion and fire")
		return ErrEStop
	}

	if err := c.TestFire(); err != nil {
		return err
	}

	xOK, yOK := c.LimitStatus()
	if !xOK || !yOK {
		log.Printf("turret: self test: skipping jog, limit not ok (x=%t y=%t)", xOK, yOK)
		return ErrLimitTripped
	}
	if _, err := c.Jog(AxisX, 1, 1.0, 1000); err != nil {
		return err
	}
	_, err := c.Jog(AxisX, -1, 1.0, 1000)
	return err
}
