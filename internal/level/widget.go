// Package level sequences exercises, aggregates stroke completion into level
// completion, and manages popups, pause and music.
package level

import "github.com/verte-zerg/tuitrace/internal/trace"

// Widget is anything the controller shows or hides: panels, popups, the
// pause menu.
type Widget interface {
	SetVisible(visible bool)
	Visible() bool
}

// Affordance is a navigation control that can be enabled or disabled.
type Affordance interface {
	SetInteractable(enabled bool)
	Interactable() bool
}

// AudioOutput is the background music source.
type AudioOutput interface {
	SetMuted(muted bool)
}

// Navigator loads scenes and ends the program.
type Navigator interface {
	LoadScene(name string)
	Quit()
}

// Flag is a Widget that only remembers whether it is shown.
type Flag struct {
	visible bool
}

// SetVisible implements Widget.
func (f *Flag) SetVisible(visible bool) { f.visible = visible }

// Visible implements Widget.
func (f *Flag) Visible() bool { return f.visible }

// Button is an Affordance that only remembers whether it is enabled.
type Button struct {
	Label   string
	enabled bool
}

// SetInteractable implements Affordance.
func (b *Button) SetInteractable(enabled bool) { b.enabled = enabled }

// Interactable implements Affordance.
func (b *Button) Interactable() bool { return b.enabled }

// Panel is one exercise: a visible surface owning the tracers of its strokes.
type Panel struct {
	Name    string
	Tracers []*trace.Tracer
	Flag
}

// NewPanel creates a hidden panel.
func NewPanel(name string, tracers ...*trace.Tracer) *Panel {
	return &Panel{Name: name, Tracers: tracers}
}

// ResetTracing resets every tracer of the panel.
func (p *Panel) ResetTracing() {
	if p == nil {
		return
	}
	for _, t := range p.Tracers {
		if t != nil {
			t.Reset()
		}
	}
}

// StrokeCount sums the strokes of every tracer of the panel.
func (p *Panel) StrokeCount() int {
	if p == nil {
		return 0
	}
	total := 0
	for _, t := range p.Tracers {
		if t != nil {
			total += t.StrokeCount()
		}
	}
	return total
}

func show(w Widget, visible bool) {
	if w == nil {
		return
	}
	w.SetVisible(visible)
}

func enable(a Affordance, enabled bool) {
	if a == nil {
		return
	}
	a.SetInteractable(enabled)
}
