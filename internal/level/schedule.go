package level

import (
	"sort"
	"time"
)

// Deferred is an action due at a point of scheduler time.
type Deferred struct {
	due  time.Duration
	seq  int
	fn   func()
	done bool
}

// Cancel stops the action from running. Cancelling a finished action is a
// no-op.
func (d *Deferred) Cancel() {
	if d == nil {
		return
	}
	d.done = true
}

// Pending reports whether the action has neither run nor been cancelled.
func (d *Deferred) Pending() bool {
	return d != nil && !d.done
}

// Scheduler runs deferred actions as its clock is advanced. It never
// blocks; the host advances it from its frame loop.
type Scheduler struct {
	now     time.Duration
	seq     int
	pending []*Deferred
}

// Now returns the scheduler's time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d of scheduler time has passed.
func (s *Scheduler) After(d time.Duration, fn func()) *Deferred {
	s.seq++
	job := &Deferred{due: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, job)
	return job
}

// Advance moves the clock forward and runs every due action in due order.
func (s *Scheduler) Advance(elapsed time.Duration) {
	if elapsed > 0 {
		s.now += elapsed
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].due == s.pending[j].due {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].due < s.pending[j].due
	})
	var keep []*Deferred
	var run []*Deferred
	for _, job := range s.pending {
		switch {
		case job.done:
		case job.due <= s.now:
			run = append(run, job)
		default:
			keep = append(keep, job)
		}
	}
	s.pending = keep
	for _, job := range run {
		if job.done {
			continue
		}
		job.done = true
		if job.fn != nil {
			job.fn()
		}
	}
}

// Len returns the number of pending actions.
func (s *Scheduler) Len() int {
	n := 0
	for _, job := range s.pending {
		if !job.done {
			n++
		}
	}
	return n
}

// Clock scales host time before it reaches the scheduler: 0 freezes, 1 runs.
type Clock struct {
	scale float64
}

// NewClock returns a running clock.
func NewClock() *Clock {
	return &Clock{scale: 1}
}

// Scale returns the time scale.
func (c *Clock) Scale() float64 {
	return c.scale
}

// SetScale sets the time scale. Negative values are clamped to 0.
func (c *Clock) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

// Scaled applies the time scale to elapsed.
func (c *Clock) Scaled(elapsed time.Duration) time.Duration {
	return time.Duration(float64(elapsed) * c.scale)
}
