package paint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJob = `{
	"mode": "simple",
	"source_image": "/tmp/cat.png",
	"passes": [
		{"label": "Outline", "color": "#102030", "points": [[0.1, 0.2], [0.9, 0.8]]},
		{"label": "Fill", "color": "#ffffff", "enabled": false, "points": [[0.5, 0.5]]}
	]
}`

func TestLoad(t *testing.T) {
	j, err := Load(strings.NewReader(sampleJob))
	require.NoError(t, err)

	assert.Equal(t, "simple", j.Mode)
	require.Len(t, j.Passes, 2)

	// enabled defaults to true when absent
	assert.True(t, j.Passes[0].Enabled)
	assert.False(t, j.Passes[1].Enabled)
	assert.Equal(t, [2]float64{0.1, 0.2}, j.Passes[0].Points[0])
}

func TestJob_Validate(t *testing.T) {
	j, err := Load(strings.NewReader(sampleJob))
	require.NoError(t, err)
	assert.NoError(t, j.Validate())

	var nilJob *Job
	assert.Equal(t, ErrEmptyJob, nilJob.Validate())

	assert.Equal(t, ErrEmptyJob, (&Job{}).Validate())

	// only disabled passes
	j.Passes = j.Passes[1:]
	assert.Equal(t, ErrEmptyJob, j.Validate())

	// enabled pass with no points
	empty := &Job{Passes: []Pass{{Label: "x", Enabled: true}}}
	assert.Equal(t, ErrEmptyJob, empty.Validate())
}

func TestJob_Pass(t *testing.T) {
	j, err := Load(strings.NewReader(sampleJob))
	require.NoError(t, err)

	p, err := j.Pass(1)
	assert.NoError(t, err)
	assert.Equal(t, "Fill", p.Label)

	_, err = j.Pass(2)
	assert.Equal(t, ErrBadIndex, err)
	_, err = j.Pass(-1)
	assert.Equal(t, ErrBadIndex, err)
}
