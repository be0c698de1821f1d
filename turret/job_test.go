package turret

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaymaker27/vector-paint/coord"
	"github.com/jaymaker27/vector-paint/gpio"
	"github.com/jaymaker27/vector-paint/paint"
)

// centeredJob builds a job whose every point is the forward reference,
// so runs exercise the executor without any motion.
func centeredJob(passPoints ...int) *paint.Job {
	j := &paint.Job{Mode: "points"}
	for _, n := range passPoints {
		p := paint.Pass{Label: "pass", Enabled: true}
		for k := 0; k < n; k++ {
			p.Points = append(p.Points, [2]float64{0.5, 0.5})
		}
		j.Passes = append(j.Passes, p)
	}
	return j
}

// fireWatcher counts marker pulses and can trigger a callback on the
// nth rising edge.
func watchFire(sim *gpio.Sim, cfg Config, at int64, fn func()) *edgeCounter {
	e := &edgeCounter{}
	sim.OnWrite(func(p gpio.Pin, l gpio.Level) {
		if p != cfg.Pins.Fire || l != gpio.High {
			return
		}
		e.mu.Lock()
		e.n++
		hit := e.n == at
		e.mu.Unlock()
		if hit && fn != nil {
			fn()
		}
	})
	return e
}

func TestRunJobCompletes(t *testing.T) {
	c, sim, cfg := newTestController(t)
	fired := watchFire(sim, cfg, 0, nil)

	res := c.RunJob(centeredJob(3, 2))
	assert.Equal(t, JobCompleted, res.State)
	assert.NoError(t, res.Err)
	assert.Equal(t, 5, res.PointsDone)
	assert.Equal(t, 0, res.Pass)
	assert.Equal(t, 0, res.Point)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Equal(t, int64(5), fired.Count())
	assert.Equal(t, JobCompleted, c.Status().Job)
}

func TestRunJobAbortStopsBeforeNextPoint(t *testing.T) {
	c, sim, cfg := newTestController(t)

	// abort lands after the 4th point fires; the run must stop before
	// point 5 and report where it stopped
	fired := watchFire(sim, cfg, 4, c.RequestAbort)

	res := c.RunJob(centeredJob(3, 3))
	assert.Equal(t, JobAborted, res.State)
	assert.Equal(t, ErrAborted, res.Err)
	assert.Equal(t, 4, res.PointsDone)
	assert.Equal(t, 1, res.Pass)
	assert.Equal(t, 1, res.Point)
	assert.Equal(t, int64(4), fired.Count())
	assert.Equal(t, JobAborted, c.Status().Job)
}

func TestRunJobStaleAbortIsCleared(t *testing.T) {
	c, _, _ := newTestController(t)

	c.RequestAbort()
	res := c.RunJob(centeredJob(2))
	assert.Equal(t, JobCompleted, res.State)
	assert.Equal(t, 2, res.PointsDone)
}

func TestRunJobEStopMidRunFaults(t *testing.T) {
	c, sim, cfg := newTestController(t)
	watchFire(sim, cfg, 2, func() { sim.Set(cfg.Pins.EStop, gpio.Low) })

	res := c.RunJob(centeredJob(4))
	assert.Equal(t, JobFaulted, res.State)
	assert.Equal(t, ErrEStop, res.Err)
	assert.Equal(t, 2, res.PointsDone)
	assert.Equal(t, 0, res.Pass)
	assert.Equal(t, 2, res.Point)
}

func TestRunJobNormalizedMapping(t *testing.T) {
	c, _, cfg := newTestController(t)

	// (0.5, 0.5) is the forward reference; (0.75, 0.5) is a quarter
	// frame right of center
	j := &paint.Job{Passes: []paint.Pass{{
		Enabled: true,
		Points:  [][2]float64{{0.5, 0.5}, {0.75, 0.5}, {1, 1}},
	}}}
	res := c.RunJob(j)
	require.Equal(t, JobCompleted, res.State)
	assert.Equal(t, 3, res.PointsDone)

	// run ends parked at the last point
	assert.Equal(t, coord.Point{
		X: cfg.MaxOffsetStepsX,
		Y: cfg.MaxOffsetStepsY,
	}, c.Position())
}

func TestRunJobStartsFromForwardReference(t *testing.T) {
	c, _, _ := newTestController(t)

	_, err := c.JogXY(200, 100, 1, false)
	require.NoError(t, err)
	fwd := c.SetCurrentAsForward()

	_, err = c.JogXY(-150, -50, 1, false)
	require.NoError(t, err)

	res := c.RunJob(centeredJob(1))
	require.Equal(t, JobCompleted, res.State)
	assert.Equal(t, fwd, c.Position())
}

func TestRunJobSkipsDisabledAndEmptyPasses(t *testing.T) {
	c, sim, cfg := newTestController(t)
	fired := watchFire(sim, cfg, 0, nil)

	j := &paint.Job{Passes: []paint.Pass{
		{Enabled: false, Points: [][2]float64{{0.5, 0.5}, {0.5, 0.5}}},
		{Enabled: true},
		{Enabled: true, Points: [][2]float64{{0.5, 0.5}}},
	}}
	res := c.RunJob(j)
	assert.Equal(t, JobCompleted, res.State)
	assert.Equal(t, 1, res.PointsDone)
	assert.Equal(t, int64(1), fired.Count())
}

func TestRunJobSkipsUnusablePoints(t *testing.T) {
	c, _, _ := newTestController(t)

	j := &paint.Job{Passes: []paint.Pass{{
		Enabled: true,
		Points:  [][2]float64{{0.5, 0.5}, {math.NaN(), 0.5}, {0.5, math.Inf(1)}, {0.5, 0.5}},
	}}}
	res := c.RunJob(j)
	assert.Equal(t, JobCompleted, res.State)
	assert.Equal(t, 2, res.PointsDone)
}

func TestRunJobSoftLimitClampStillFires(t *testing.T) {
	c, sim, cfg := newTestController(t)
	fired := watchFire(sim, cfg, 0, nil)

	// travel pinned at home: every off-center target clamps to nothing
	_, err := c.FinalizeTravelCalibration()
	require.NoError(t, err)

	j := &paint.Job{Passes: []paint.Pass{{
		Enabled: true,
		Points:  [][2]float64{{0.75, 0.5}},
	}}}
	res := c.RunJob(j)
	assert.Equal(t, JobCompleted, res.State)
	assert.Equal(t, 1, res.PointsDone)
	assert.Equal(t, int64(1), fired.Count())
	assert.True(t, c.Position().IsZero())
}

func TestRunJobRejectsInvalid(t *testing.T) {
	c, _, _ := newTestController(t)

	res := c.RunJob(nil)
	assert.Equal(t, JobIdle, res.State)
	assert.Equal(t, ErrInvalidJob, res.Err)

	res = c.RunJob(&paint.Job{})
	assert.Equal(t, JobIdle, res.State)
	assert.Equal(t, ErrInvalidJob, res.Err)

	// disabled-only jobs have nothing to execute
	res = c.RunJob(&paint.Job{Passes: []paint.Pass{{
		Points: [][2]float64{{0.5, 0.5}},
	}}})
	assert.Equal(t, ErrInvalidJob, res.Err)
}

func TestRunJobRefusedInSafeMode(t *testing.T) {
	c, sim, cfg := newTestController(t)

	sim.Set(cfg.Pins.EStop, gpio.Low)
	res := c.RunJob(centeredJob(1))
	assert.Equal(t, JobIdle, res.State)
	assert.Equal(t, ErrEStop, res.Err)

	sim.Set(cfg.Pins.EStop, gpio.High)
	sim.Set(cfg.Pins.LimitY, gpio.High)
	res = c.RunJob(centeredJob(1))
	assert.Equal(t, ErrLimitTripped, res.Err)
}

func TestRunPass(t *testing.T) {
	c, sim, cfg := newTestController(t)
	fired := watchFire(sim, cfg, 0, nil)

	j := centeredJob(3, 2)
	res := c.RunPass(j, 1)
	assert.Equal(t, JobCompleted, res.State)
	assert.Equal(t, 2, res.PointsDone)
	assert.Equal(t, int64(2), fired.Count())

	res = c.RunPass(j, 5)
	assert.Equal(t, JobIdle, res.State)
	assert.Equal(t, ErrInvalidJob, res.Err)
}
