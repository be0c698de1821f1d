package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: -5}

	assert.Equal(t, Point{X: 5, Y: -3}, a.Add(b))
}

func TestPoint_Sub(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: -5}

	assert.Equal(t, Point{X: -3, Y: 7}, a.Sub(b))
}

func TestClampAxis(t *testing.T) {
	max := int64(100)

	assert.Equal(t, int64(0), ClampAxis(-5, 0, &max))
	assert.Equal(t, int64(100), ClampAxis(250, 0, &max))
	assert.Equal(t, int64(42), ClampAxis(42, 0, &max))

	// nil max means unbounded above
	assert.Equal(t, int64(250), ClampAxis(250, 0, nil))
	assert.Equal(t, int64(0), ClampAxis(-1, 0, nil))
}
