package turret

import (
	"log"

	"github.com/jaymaker27/vector-paint/coord"
)

// SoftLimits are inclusive per-axis bounds on the step position.
// Minima are fixed at home (0); maxima are nil until travel
// calibration establishes them, meaning unbounded above.
type SoftLimits struct {
	XMin int64  `json:"x_min"`
	XMax *int64 `json:"x_max"`
	YMin int64  `json:"y_min"`
	YMax *int64 `json:"y_max"`
}

func (l SoftLimits) clone() SoftLimits {
	if l.XMax != nil {
		v := *l.XMax
		l.XMax = &v
	}
	if l.YMax != nil {
		v := *l.YMax
		l.YMax = &v
	}
	return l
}

// TravelRange returns a copy of the current soft limits.
func (c *Controller) TravelRange() SoftLimits {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.limits.clone()
}

// clampDelta clamps a requested delta so the resulting absolute
// position stays within the soft limits, and returns the permitted
// delta. A caller seeing a zero result for a non-zero request must
// treat the move as rejected, not completed.
func (c *Controller) clampDelta(req coord.Point) coord.Point {
	c.stateMu.Lock()
	cur := c.pos
	lim := c.limits
	c.stateMu.Unlock()

	target := cur.Add(req)
	target.X = coord.ClampAxis(target.X, lim.XMin, lim.XMax)
	target.Y = coord.ClampAxis(target.Y, lim.YMin, lim.YMax)
	return target.Sub(cur)
}

// BeginTravelCalibration homes, zeroes, and unlocks travel: minima stay
// at home and maxima are cleared so the operator can jog out to the
// real end of travel.
func (c *Controller) BeginTravelCalibration() (HomeResult, error) {
	log.Println("turret: travel calibration: homing and clearing soft maxima")
	res := c.HomeAll()
	if !res.Success() {
		return res, res.Err()
	}

	c.stateMu.Lock()
	c.limits.XMin, c.limits.YMin = 0, 0
	c.limits.XMax, c.limits.YMax = nil, nil
	c.stateMu.Unlock()
	return res, c.saveSoftLimits()
}

// FinalizeTravelCalibration fixes the current position as the per-axis
// soft maximum (floored at the minimum) and persists it.
func (c *Controller) FinalizeTravelCalibration() (SoftLimits, error) {
	c.stateMu.Lock()
	xMax := c.pos.X
	if xMax < c.limits.XMin {
		xMax = c.limits.XMin
	}
	yMax := c.pos.Y
	if yMax < c.limits.YMin {
		yMax = c.limits.YMin
	}
	c.limits.XMax = &xMax
	c.limits.YMax = &yMax
	lim := c.limits.clone()
	c.stateMu.Unlock()

	log.Printf("turret: travel calibration finalized: x=[%d,%d] y=[%d,%d]",
		lim.XMin, *lim.XMax, lim.YMin, *lim.YMax)
	return lim, c.saveSoftLimits()
}
