package trace

import (
	"github.com/verte-zerg/tuitrace/internal/geom"
)

// DefaultSpacing is the minimum distance between two consecutive ink marks.
const DefaultSpacing = 0.1

// State is the tracer's position in the tracing state machine.
type State int

const (
	// Idle means the tracer has no strokes.
	Idle State = iota
	// AwaitingStart waits for a press on the current checkpoint.
	AwaitingStart
	// Tracing means a drag started on the current checkpoint.
	Tracing
	// StrokeComplete is observed by listeners while a completion is reported.
	StrokeComplete
	// ExerciseComplete means every stroke has been traced.
	ExerciseComplete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingStart:
		return "awaiting-start"
	case Tracing:
		return "tracing"
	case StrokeComplete:
		return "stroke-complete"
	case ExerciseComplete:
		return "exercise-complete"
	default:
		return "unknown"
	}
}

// Options configures a Tracer. Every field is optional.
type Options struct {
	// Spacing is the decimation threshold for ink marks. Zero or less
	// selects DefaultSpacing.
	Spacing float64
	// Hits resolves pointer positions to checkpoints. Nil hit-tests the
	// tracer's own checkpoints.
	Hits HitTester
	// Ink receives ink marks. Nil drops them.
	Ink InkCanvas
	// Listener is told about completed strokes.
	Listener StrokeListener
}

// Tracer drives the strokes of one exercise through checkpoint validation.
// It is not safe for concurrent use; a host calls it from its frame loop.
type Tracer struct {
	paths    []*StrokePath
	spacing  float64
	hits     HitTester
	ink      InkCanvas
	listener StrokeListener

	state           State
	strokeIndex     int
	checkpointIndex int
	lastSample      geom.Point
}

// New builds a tracer over paths and puts it in its initial state.
func New(paths []*StrokePath, opts Options) *Tracer {
	t := &Tracer{
		paths:    paths,
		spacing:  opts.Spacing,
		hits:     opts.Hits,
		ink:      opts.Ink,
		listener: opts.Listener,
	}
	if t.spacing <= 0 {
		t.spacing = DefaultSpacing
	}
	if t.hits == nil {
		t.hits = CheckpointsOf(paths...)
	}
	t.Reset()
	return t
}

// SetListener replaces the stroke listener.
func (t *Tracer) SetListener(l StrokeListener) {
	t.listener = l
}

// State returns the current state.
func (t *Tracer) State() State {
	return t.state
}

// Tracing reports whether a drag is in progress.
func (t *Tracer) Tracing() bool {
	return t.state == Tracing
}

// StrokeIndex returns the index of the active stroke. It equals
// StrokeCount once the exercise is complete.
func (t *Tracer) StrokeIndex() int {
	return t.strokeIndex
}

// CheckpointIndex returns the index of the current checkpoint in the
// active stroke.
func (t *Tracer) CheckpointIndex() int {
	return t.checkpointIndex
}

// StrokeCount returns the number of strokes owned by the tracer.
func (t *Tracer) StrokeCount() int {
	return len(t.paths)
}

// Paths returns the tracer's strokes.
func (t *Tracer) Paths() []*StrokePath {
	return t.paths
}

// Current returns the active stroke, or nil when there is none.
func (t *Tracer) Current() *StrokePath {
	if t.strokeIndex < 0 || t.strokeIndex >= len(t.paths) {
		return nil
	}
	return t.paths[t.strokeIndex]
}

// PointerDown starts tracing when pos hits exactly the current checkpoint.
// Anything else is ignored.
func (t *Tracer) PointerDown(pos geom.Point) {
	if t.state != AwaitingStart {
		return
	}
	path := t.Current()
	target := path.Checkpoint(t.checkpointIndex)
	if target == nil {
		return
	}
	hit := t.hits.HitTest(pos)
	if hit == nil || hit != target {
		return
	}
	t.state = Tracing
	t.lastSample = pos
	Logger().Debug("tracing started",
		"stroke", t.strokeIndex, "checkpoint", t.checkpointIndex, "id", target.ID)
}

// PointerDrag lays an ink mark at pos when it is inside the stroke's region
// and farther than the spacing from the previous sample.
func (t *Tracer) PointerDrag(pos geom.Point) {
	if t.state != Tracing {
		return
	}
	path := t.Current()
	if !path.Contains(pos) {
		return
	}
	if pos.Distance(t.lastSample) <= t.spacing {
		return
	}
	if t.ink != nil {
		t.ink.Spawn(pos)
	}
	t.lastSample = pos
}

// PointerUp ends a drag. Releasing on the next checkpoint advances progress
// and may complete the stroke; any other release discards the ink of the
// attempt and keeps progress where it was.
func (t *Tracer) PointerUp(pos geom.Point) {
	if t.state != Tracing {
		return
	}
	path := t.Current()
	next := t.checkpointIndex + 1
	hit := t.hits.HitTest(pos)

	switch {
	case hit != nil && next < len(path.Checkpoints) && hit == path.Checkpoints[next]:
		t.advance(path)
	case hit != nil && next == len(path.Checkpoints) && hit == path.Checkpoints[t.checkpointIndex]:
		// Single checkpoint stroke: press and release on it.
		t.completeStroke(path)
	default:
		t.clearInk()
		Logger().Debug("attempt discarded",
			"stroke", t.strokeIndex, "checkpoint", t.checkpointIndex)
	}

	if t.state == Tracing {
		t.state = AwaitingStart
	}
	t.lastSample = geom.Point{}
}

// Cancel abandons a drag in progress as if it had been released off target:
// ink is cleared and progress stays where it was.
func (t *Tracer) Cancel() {
	if t.state != Tracing {
		return
	}
	t.clearInk()
	t.state = AwaitingStart
	t.lastSample = geom.Point{}
	Logger().Debug("attempt cancelled",
		"stroke", t.strokeIndex, "checkpoint", t.checkpointIndex)
}

// Reset returns the tracer to the first checkpoint of the first stroke,
// clears ink and switches off every fill.
func (t *Tracer) Reset() {
	t.strokeIndex = 0
	t.checkpointIndex = 0
	t.lastSample = geom.Point{}
	t.clearInk()

	for _, p := range t.paths {
		if p == nil {
			continue
		}
		setFill(p.StrokeFill, false)
		setFill(p.ParentFill, false)
		p.EnableCheckpoints(false)
	}

	if len(t.paths) == 0 {
		t.state = Idle
		return
	}
	t.state = AwaitingStart
	enableWindow(t.paths[0], 0)
}

func (t *Tracer) advance(path *StrokePath) {
	path.EnableCheckpoint(t.checkpointIndex, false)
	t.checkpointIndex++
	if t.checkpointIndex < len(path.Checkpoints)-1 {
		enableWindow(path, t.checkpointIndex)
		Logger().Debug("checkpoint reached",
			"stroke", t.strokeIndex, "checkpoint", t.checkpointIndex)
		return
	}
	t.completeStroke(path)
}

func (t *Tracer) completeStroke(path *StrokePath) {
	setFill(path.StrokeFill, true)
	t.clearInk()
	path.EnableCheckpoints(false)

	t.state = StrokeComplete
	Logger().Info("stroke completed", "stroke", t.strokeIndex, "name", path.Name)
	if t.listener != nil {
		t.listener.OnStrokeCompleted()
	}

	t.strokeIndex++
	t.checkpointIndex = 0
	if t.strokeIndex < len(t.paths) {
		t.state = AwaitingStart
		enableWindow(t.paths[t.strokeIndex], 0)
		return
	}

	t.state = ExerciseComplete
	if len(t.paths) > 0 && t.paths[0] != nil {
		setFill(t.paths[0].ParentFill, true)
	}
	Logger().Info("exercise completed", "strokes", len(t.paths))
	if el, ok := t.listener.(ExerciseListener); ok {
		el.OnExerciseCompleted()
	}
}

func (t *Tracer) clearInk() {
	if t.ink != nil {
		t.ink.Clear()
	}
}

// enableWindow enables the checkpoint at index and the one after it.
func enableWindow(p *StrokePath, index int) {
	p.EnableCheckpoint(index, true)
	p.EnableCheckpoint(index+1, true)
}
