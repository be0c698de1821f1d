package coord

// Point is a turret pose in motor steps relative to home.
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y
}

func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	return p
}

// ClampAxis bounds v to [min, max]. A nil max leaves v unbounded above.
func ClampAxis(v, min int64, max *int64) int64 {
	if v < min {
		v = min
	}
	if max != nil && v > *max {
		v = *max
	}
	return v
}
