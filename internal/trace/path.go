// Package trace implements stroke tracing: ordered checkpoint validation,
// ink sampling, and stroke and exercise completion.
package trace

import (
	"github.com/verte-zerg/tuitrace/internal/geom"
)

// DefaultCheckpointRadius is the hit radius used when a checkpoint has none.
const DefaultCheckpointRadius = 0.05

// Checkpoint is a hit-testable target along a stroke. Identity is pointer
// identity: two checkpoints at the same position are still different targets.
type Checkpoint struct {
	ID      string
	Pos     geom.Point
	Radius  float64
	enabled bool
}

// NewCheckpoint creates a disabled checkpoint.
func NewCheckpoint(id string, pos geom.Point, radius float64) *Checkpoint {
	if radius <= 0 {
		radius = DefaultCheckpointRadius
	}
	return &Checkpoint{ID: id, Pos: pos, Radius: radius}
}

// Enabled reports whether the checkpoint is visible and hittable.
func (c *Checkpoint) Enabled() bool {
	return c != nil && c.enabled
}

// SetEnabled shows or hides the checkpoint.
func (c *Checkpoint) SetEnabled(enabled bool) {
	if c == nil {
		return
	}
	c.enabled = enabled
}

// Covers reports whether p is inside the checkpoint's hit disc.
func (c *Checkpoint) Covers(p geom.Point) bool {
	if c == nil {
		return false
	}
	return geom.Circle{Center: c.Pos, Radius: c.Radius}.Contains(p)
}

// Fill is a visual marker that is switched on when a stroke or an exercise
// is complete.
type Fill interface {
	SetActive(active bool)
	Active() bool
}

// Toggle is a Fill that only remembers its state. Hosts read it when drawing.
type Toggle struct {
	active bool
}

// SetActive implements Fill.
func (t *Toggle) SetActive(active bool) {
	t.active = active
}

// Active implements Fill.
func (t *Toggle) Active() bool {
	return t.active
}

// StrokePath is one stroke of an exercise: the checkpoints in trace order,
// the region ink may be laid in, and optional completion fills.
type StrokePath struct {
	Name        string
	Checkpoints []*Checkpoint
	Region      geom.Region
	StrokeFill  Fill
	ParentFill  Fill
}

// EnableCheckpoints enables or disables every checkpoint of the path.
func (p *StrokePath) EnableCheckpoints(enabled bool) {
	if p == nil {
		return
	}
	for _, cp := range p.Checkpoints {
		cp.SetEnabled(enabled)
	}
}

// EnableCheckpoint enables or disables the checkpoint at index. Out-of-range
// indices are ignored.
func (p *StrokePath) EnableCheckpoint(index int, enabled bool) {
	if p == nil || index < 0 || index >= len(p.Checkpoints) {
		return
	}
	p.Checkpoints[index].SetEnabled(enabled)
}

// Checkpoint returns the checkpoint at index or nil.
func (p *StrokePath) Checkpoint(index int) *Checkpoint {
	if p == nil || index < 0 || index >= len(p.Checkpoints) {
		return nil
	}
	return p.Checkpoints[index]
}

// Contains reports whether p lies in the drawing region. A path without a
// region accepts no ink.
func (p *StrokePath) Contains(pt geom.Point) bool {
	if p == nil || p.Region == nil {
		return false
	}
	return p.Region.Contains(pt)
}

func setFill(f Fill, active bool) {
	if f == nil {
		return
	}
	f.SetActive(active)
}
