// Package paint defines the paint-job documents handed to the turret by
// the image pipeline. The pipeline segments an image into passes; each
// pass is an ordered list of normalized (0..1) points to visit and mark.
package paint

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
)

var (
	ErrEmptyJob = errors.New("job has no executable passes")
	ErrBadIndex = errors.New("pass index out of range")
)

// Job is one prepared paint job. Mode and Source are opaque metadata
// from the pipeline; the turret only consumes the passes.
type Job struct {
	Mode   string `json:"mode"`
	Source string `json:"source_image"`
	Passes []Pass `json:"passes"`
}

// Pass is one color layer of a job.
type Pass struct {
	Label   string       `json:"label"`
	Points  [][2]float64 `json:"points"`
	Color   string       `json:"color"`
	Enabled bool         `json:"enabled"`
}

// UnmarshalJSON defaults Enabled to true when the field is absent,
// matching the documents the pipeline emits.
func (p *Pass) UnmarshalJSON(data []byte) error {
	type alias Pass
	a := alias{Enabled: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Pass(a)
	return nil
}

// Load decodes a job document.
func Load(r io.Reader) (*Job, error) {
	var j Job
	if err := json.NewDecoder(r).Decode(&j); err != nil {
		return nil, err
	}
	return &j, nil
}

// LoadFile decodes a job document from disk.
func LoadFile(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate reports whether the job can produce at least one motion:
// one enabled pass with one usable point.
func (j *Job) Validate() error {
	if j == nil || len(j.Passes) == 0 {
		return ErrEmptyJob
	}
	for _, p := range j.Passes {
		if !p.Enabled {
			continue
		}
		for _, pt := range p.Points {
			if PointUsable(pt) {
				return nil
			}
		}
	}
	return ErrEmptyJob
}

// Pass returns the indexed pass.
func (j *Job) Pass(i int) (Pass, error) {
	if j == nil || i < 0 || i >= len(j.Passes) {
		return Pass{}, ErrBadIndex
	}
	return j.Passes[i], nil
}

// PointUsable rejects points the executor cannot aim at. Out-of-range
// finite values are fine (they get clamped); NaN and Inf are not.
func PointUsable(pt [2]float64) bool {
	return !math.IsNaN(pt[0]) && !math.IsInf(pt[0], 0) &&
		!math.IsNaN(pt[1]) && !math.IsInf(pt[1], 0)
}
