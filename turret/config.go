package turret

import (
	"time"

	"github.com/jaymaker27/vector-paint/gpio"
)

// Pins is the hardware mapping, BCM numbering.
//
// Step/dir lines go through a buffer to the driver PUL+/DIR+ inputs.
// Limit switches are NC to ground with internal pull-ups: they read low
// when idle and float high when tripped. E-STOP is a NO aux contact to
// ground with a pull-up: it reads high when idle and low when pressed.
type Pins struct {
	StepX gpio.Pin
	DirX  gpio.Pin
	StepY gpio.Pin
	DirY  gpio.Pin

	LimitX gpio.Pin
	LimitY gpio.Pin

	Fire  gpio.Pin
	EStop gpio.Pin
}

// TrackingParams tune the sentry corrector.
type TrackingParams struct {
	// Deadzone is the no-correction band around frame center, as a
	// fraction of the frame.
	Deadzone float64
	// GainX/GainY convert normalized error to steps.
	GainX float64
	GainY float64
	// MinStep discards corrections smaller than this as noise.
	MinStep int64
}

// Config carries the full tuning of the motion core.
type Config struct {
	Pins Pins

	// BaseStepPeriod is the full step period at speed scale 1.0.
	BaseStepPeriod time.Duration
	// HomingStepPeriod is the (slower) period used while homing.
	HomingStepPeriod time.Duration
	// DirSettle is the pause between latching DIR and the first pulse.
	DirSettle time.Duration

	// MaxHomingSteps bounds each homing phase; the back-off phase gets
	// half of it. MinBackoffSteps is the distance backed off the switch
	// even after it clears.
	MaxHomingSteps  int64
	MinBackoffSteps int64

	// DefaultJogSteps is the floor for a unit jog; JogStepsPerDeg maps
	// UI degrees to steps; BaseSpeed maps UI speed values to a scale.
	DefaultJogSteps int64
	JogStepsPerDeg  float64
	BaseSpeed       float64

	// FirePulse is the default marker pulse; MinFirePulse is the floor
	// applied to every requested duration.
	FirePulse    time.Duration
	MinFirePulse time.Duration

	// MaxOffsetSteps* scale normalized image offsets to steps around
	// the forward reference.
	MaxOffsetStepsX int64
	MaxOffsetStepsY int64
	// PointDwell is the pause after firing at each job point.
	PointDwell time.Duration

	Tracking TrackingParams

	// ContinueOnFault lets HomeAll proceed to Y after a non-safety X
	// failure. E-STOP always stops both.
	ContinueOnFault bool

	// DataDir holds the two preference documents.
	DataDir string
}

// DefaultConfig is the reference hardware and tuning.
func DefaultConfig() Config {
	return Config{
		Pins: Pins{
			StepX:  23,
			DirX:   24,
			StepY:  20,
			DirY:   21,
			LimitX: 17,
			LimitY: 27,
			Fire:   18,
			EStop:  25,
		},
		BaseStepPeriod:   800 * time.Microsecond,
		HomingStepPeriod: time.Millisecond,
		DirSettle:        200 * time.Microsecond,
		MaxHomingSteps:   20000,
		MinBackoffSteps:  80,
		DefaultJogSteps:  800,
		JogStepsPerDeg:   200,
		BaseSpeed:        1200,
		FirePulse:        150 * time.Millisecond,
		MinFirePulse:     10 * time.Millisecond,
		MaxOffsetStepsX:  800,
		MaxOffsetStepsY:  800,
		PointDwell:       30 * time.Millisecond,
		Tracking: TrackingParams{
			Deadzone: 0.05,
			GainX:    150,
			GainY:    150,
			MinStep:  5,
		},
		ContinueOnFault: true,
	}
}
