// Package tui provides the Bubble Tea tracing interface.
package tui

import (
	"github.com/verte-zerg/tuitrace/internal/catalog"
	"github.com/verte-zerg/tuitrace/internal/level"
	"github.com/verte-zerg/tuitrace/internal/model"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

// MenuScene is the scene name that returns to the main menu.
const MenuScene = "menu"

// speaker records the mute switch. Sound itself is not played.
type speaker struct {
	muted bool
}

func (s *speaker) SetMuted(muted bool) { s.muted = muted }

// scene is one play session over a set: a panel per exercise, each with a
// single tracer and its ink buffer.
type scene struct {
	set  model.SetDef
	ctl  *level.Controller
	inks map[*trace.Tracer]*trace.InkBuffer

	complete    level.Flag
	strokePopup level.Flag
	levelPopup  level.Flag
	pausePanel  level.Flag
	next        level.Button
	back        level.Button
	audio       speaker

	pressed bool
}

func newScene(set model.SetDef, cfg model.Config, nav level.Navigator) *scene {
	s := &scene{
		set:  set,
		inks: map[*trace.Tracer]*trace.InkBuffer{},
		next: level.Button{Label: "Next"},
		back: level.Button{Label: "Back"},
	}
	panels := make([]*level.Panel, 0, len(set.Exercises))
	for _, ex := range set.Exercises {
		paths := catalog.Build(ex, catalog.BuildOptions{CheckpointRadius: cfg.CheckpointRadius})
		ink := &trace.InkBuffer{}
		t := trace.New(paths, trace.Options{Spacing: cfg.BrushSpacing, Ink: ink})
		s.inks[t] = ink
		panels = append(panels, level.NewPanel(ex.Name, t))
	}
	s.ctl = level.New(level.Config{
		Panels:        panels,
		CompletePanel: &s.complete,
		StrokePopup:   &s.strokePopup,
		LevelPopup:    &s.levelPopup,
		PopupDuration: cfg.PopupDuration,
		Next:          &s.next,
		Back:          &s.back,
		PausePanel:    &s.pausePanel,
		Music:         &s.audio,
		Navigator:     nav,
		MenuScene:     MenuScene,
	})
	s.ctl.Start()
	if !cfg.Music {
		s.ctl.ToggleMusic()
	}
	return s
}

// tracers returns the tracers of the active panel.
func (s *scene) tracers() []*trace.Tracer {
	panel := s.ctl.Active()
	if panel == nil {
		return nil
	}
	return panel.Tracers
}

// inkFor returns the ink buffers of the given tracers in the same order.
func (s *scene) inkFor(tracers []*trace.Tracer) []*trace.InkBuffer {
	out := make([]*trace.InkBuffer, 0, len(tracers))
	for _, t := range tracers {
		out = append(out, s.inks[t])
	}
	return out
}

// exerciseName returns the name of the active exercise, if any.
func (s *scene) exerciseName() string {
	if panel := s.ctl.Active(); panel != nil {
		return panel.Name
	}
	return ""
}
