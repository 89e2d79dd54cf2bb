package trace

import (
	"github.com/verte-zerg/tuitrace/internal/geom"
)

// HitTester returns the topmost checkpoint whose hit region contains p, or nil.
type HitTester interface {
	HitTest(p geom.Point) *Checkpoint
}

// InkCanvas spawns and destroys ink marks. The tracer owns no pixels.
type InkCanvas interface {
	Spawn(p geom.Point)
	Clear()
}

// StrokeListener is notified each time a stroke is completed.
type StrokeListener interface {
	OnStrokeCompleted()
}

// ExerciseListener is optionally implemented by a StrokeListener that also
// wants to know when the last stroke of the exercise is done.
type ExerciseListener interface {
	OnExerciseCompleted()
}

// ListenerFunc adapts a function to StrokeListener.
type ListenerFunc func()

// OnStrokeCompleted implements StrokeListener.
func (f ListenerFunc) OnStrokeCompleted() {
	f()
}

// CheckpointSet hit-tests a fixed collection of checkpoints. Only enabled
// checkpoints are hittable; overlapping hits resolve to the nearest center,
// later entries winning ties.
type CheckpointSet []*Checkpoint

// CheckpointsOf collects the checkpoints of the given paths.
func CheckpointsOf(paths ...*StrokePath) CheckpointSet {
	var set CheckpointSet
	for _, p := range paths {
		if p == nil {
			continue
		}
		set = append(set, p.Checkpoints...)
	}
	return set
}

// HitTest implements HitTester.
func (s CheckpointSet) HitTest(p geom.Point) *Checkpoint {
	var best *Checkpoint
	bestDist := 0.0
	for _, cp := range s {
		if !cp.Enabled() || !cp.Covers(p) {
			continue
		}
		d := cp.Pos.Distance(p)
		if best == nil || d <= bestDist {
			best = cp
			bestDist = d
		}
	}
	return best
}

// InkMark is one sample laid down while dragging.
type InkMark struct {
	Pos geom.Point
}

// InkBuffer is an InkCanvas that keeps marks in memory for a host to draw.
type InkBuffer struct {
	marks []InkMark
}

// Spawn implements InkCanvas.
func (b *InkBuffer) Spawn(p geom.Point) {
	b.marks = append(b.marks, InkMark{Pos: p})
}

// Clear implements InkCanvas.
func (b *InkBuffer) Clear() {
	b.marks = b.marks[:0]
}

// Marks returns a copy of the current marks.
func (b *InkBuffer) Marks() []InkMark {
	out := make([]InkMark, len(b.marks))
	copy(out, b.marks)
	return out
}

// Len returns the number of live marks.
func (b *InkBuffer) Len() int {
	return len(b.marks)
}
