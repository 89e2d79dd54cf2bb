package level

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuitrace/internal/geom"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

type fakeAudio struct {
	muted []bool
}

func (a *fakeAudio) SetMuted(m bool) { a.muted = append(a.muted, m) }

type fakeNav struct {
	scenes []string
	quits  int
}

func (n *fakeNav) LoadScene(name string) { n.scenes = append(n.scenes, name) }
func (n *fakeNav) Quit()                 { n.quits++ }

type rig struct {
	ctl          *Controller
	panels       []*Panel
	complete     *Flag
	strokePopup  *Flag
	levelPopup   *Flag
	pausePanel   *Flag
	next, back   *Button
	audio        *fakeAudio
	nav          *fakeNav
	tracersByLvl [][]*trace.Tracer
}

// singlePointStroke builds a one-checkpoint stroke at x.
func singlePointStroke(name string, x float64) *trace.StrokePath {
	cp := trace.NewCheckpoint(name, geom.Pt(x, 0.5), 0.04)
	return &trace.StrokePath{
		Name:        name,
		Checkpoints: []*trace.Checkpoint{cp},
		Region:      geom.Circle{Center: cp.Pos, Radius: 0.1},
		StrokeFill:  &trace.Toggle{},
	}
}

// newRig builds one panel per entry of strokes; each entry lists the stroke
// count of every tracer in that panel.
func newRig(strokes ...[]int) *rig {
	r := &rig{
		complete:    &Flag{},
		strokePopup: &Flag{},
		levelPopup:  &Flag{},
		pausePanel:  &Flag{},
		next:        &Button{Label: "next"},
		back:        &Button{Label: "back"},
		audio:       &fakeAudio{},
		nav:         &fakeNav{},
	}
	for li, tracers := range strokes {
		var ts []*trace.Tracer
		for _, n := range tracers {
			var paths []*trace.StrokePath
			for si := 0; si < n; si++ {
				paths = append(paths, singlePointStroke("cp", 0.1+0.2*float64(si)))
			}
			ts = append(ts, trace.New(paths, trace.Options{}))
		}
		r.tracersByLvl = append(r.tracersByLvl, ts)
		r.panels = append(r.panels, NewPanel(string(rune('A'+li)), ts...))
	}
	r.ctl = New(Config{
		Panels:        r.panels,
		CompletePanel: r.complete,
		StrokePopup:   r.strokePopup,
		LevelPopup:    r.levelPopup,
		PopupDuration: time.Second,
		Next:          r.next,
		Back:          r.back,
		PausePanel:    r.pausePanel,
		Music:         r.audio,
		Navigator:     r.nav,
		MenuScene:     "menu",
	})
	r.ctl.Start()
	return r
}

// traceNext completes the active stroke of tracer t.
func traceNext(t *trace.Tracer) {
	cp := t.Current().Checkpoints[0]
	t.PointerDown(cp.Pos)
	t.PointerUp(cp.Pos)
}

func TestStartEntersFirstLevel(t *testing.T) {
	r := newRig([]int{2}, []int{1})

	require.Equal(t, LevelActive, r.ctl.Phase())
	require.Equal(t, 0, r.ctl.Index())
	require.Equal(t, 2, r.ctl.Total())
	require.True(t, r.panels[0].Visible())
	require.False(t, r.panels[1].Visible())
	require.False(t, r.next.Interactable())
	require.False(t, r.back.Interactable())
	require.False(t, r.complete.Visible())
}

func TestStartWithoutPanels(t *testing.T) {
	r := newRig()
	require.Equal(t, NoLevels, r.ctl.Phase())
	r.ctl.NextLevel()
	r.ctl.SkipLevel()
	r.ctl.BackLevel()
	r.ctl.OnStrokeCompleted()
	require.Equal(t, NoLevels, r.ctl.Phase())
	require.Nil(t, r.ctl.Active())
}

func TestTwoStrokeLevelCompletion(t *testing.T) {
	r := newRig([]int{2}, []int{1})
	tr := r.tracersByLvl[0][0]

	traceNext(tr)
	require.Equal(t, 1, r.ctl.Completed())
	require.Equal(t, 2, r.ctl.Total())
	require.False(t, r.next.Interactable())
	require.True(t, r.strokePopup.Visible())
	require.False(t, r.levelPopup.Visible())

	traceNext(tr)
	require.Equal(t, 2, r.ctl.Completed())
	require.True(t, r.next.Interactable())
	require.True(t, r.levelPopup.Visible())
	require.True(t, r.ctl.LevelComplete())
}

func TestTotalSumsAllTracersOfPanel(t *testing.T) {
	r := newRig([]int{2, 3})
	require.Equal(t, 5, r.ctl.Total())

	for _, tr := range r.tracersByLvl[0] {
		for tr.State() != trace.ExerciseComplete {
			traceNext(tr)
		}
	}
	require.Equal(t, 5, r.ctl.Completed())
	require.True(t, r.next.Interactable())
}

func TestPopupsHideAfterDuration(t *testing.T) {
	r := newRig([]int{1})
	traceNext(r.tracersByLvl[0][0])
	require.True(t, r.strokePopup.Visible())
	require.True(t, r.levelPopup.Visible())

	r.ctl.Tick(900 * time.Millisecond)
	require.True(t, r.strokePopup.Visible())
	r.ctl.Tick(200 * time.Millisecond)
	require.False(t, r.strokePopup.Visible())
	require.False(t, r.levelPopup.Visible())
}

func TestPauseFreezesPopups(t *testing.T) {
	r := newRig([]int{2})
	traceNext(r.tracersByLvl[0][0])

	r.ctl.Pause()
	require.True(t, r.pausePanel.Visible())
	require.Equal(t, 0.0, r.ctl.TimeScale())
	r.ctl.Pause()
	require.True(t, r.ctl.Paused())

	r.ctl.Tick(5 * time.Second)
	require.True(t, r.strokePopup.Visible(), "popup timer must not run while paused")

	r.ctl.Resume()
	require.False(t, r.pausePanel.Visible())
	require.Equal(t, 1.0, r.ctl.TimeScale())
	r.ctl.Tick(time.Second)
	require.False(t, r.strokePopup.Visible())
}

func TestSecondPopupExtendsDisplay(t *testing.T) {
	r := newRig([]int{3})
	tr := r.tracersByLvl[0][0]

	traceNext(tr)
	r.ctl.Tick(800 * time.Millisecond)
	traceNext(tr)
	r.ctl.Tick(400 * time.Millisecond)
	require.True(t, r.strokePopup.Visible(), "earlier hide was cancelled by the second popup")
	r.ctl.Tick(700 * time.Millisecond)
	require.False(t, r.strokePopup.Visible())
}

func TestNextIsGatedOnCompletion(t *testing.T) {
	r := newRig([]int{1}, []int{1})
	r.ctl.NextLevel()
	require.Equal(t, 0, r.ctl.Index())

	traceNext(r.tracersByLvl[0][0])
	r.ctl.NextLevel()
	require.Equal(t, 1, r.ctl.Index())
	require.False(t, r.panels[0].Visible())
	require.True(t, r.panels[1].Visible())
	require.True(t, r.back.Interactable())
	require.False(t, r.next.Interactable())
	require.Equal(t, 0, r.ctl.Completed())
}

func TestSkipAndAllLevelsComplete(t *testing.T) {
	r := newRig([]int{1}, []int{2})
	r.ctl.SkipLevel()
	require.Equal(t, 1, r.ctl.Index())
	r.ctl.SkipLevel()

	require.Equal(t, AllLevelsComplete, r.ctl.Phase())
	require.Equal(t, 2, r.ctl.Index())
	require.True(t, r.complete.Visible())
	require.False(t, r.panels[1].Visible())
	require.False(t, r.next.Interactable())
	require.False(t, r.back.Interactable())

	r.ctl.SkipLevel()
	r.ctl.NextLevel()
	require.Equal(t, 2, r.ctl.Index(), "never beyond the panel count")
}

func TestBackLevel(t *testing.T) {
	r := newRig([]int{1}, []int{1})
	r.ctl.BackLevel()
	require.Equal(t, 0, r.ctl.Index())
	require.True(t, r.panels[0].Visible())

	tr := r.tracersByLvl[0][0]
	traceNext(tr)
	r.ctl.NextLevel()
	r.ctl.BackLevel()
	require.Equal(t, 0, r.ctl.Index())
	require.True(t, r.panels[0].Visible())
	require.False(t, r.panels[1].Visible())
	require.False(t, r.back.Interactable())
	require.Equal(t, trace.AwaitingStart, tr.State(), "re-entering resets tracing")
	require.Equal(t, 0, r.ctl.Completed())
}

func TestBackFromAllLevelsComplete(t *testing.T) {
	r := newRig([]int{1}, []int{1})
	r.ctl.SkipLevel()
	r.ctl.SkipLevel()
	r.ctl.BackLevel()
	require.Equal(t, LevelActive, r.ctl.Phase())
	require.Equal(t, 1, r.ctl.Index())
	require.False(t, r.complete.Visible())
}

func TestToggleMusic(t *testing.T) {
	r := newRig([]int{1})
	r.ctl.ToggleMusic()
	r.ctl.ToggleMusic()
	require.Equal(t, []bool{true, false}, r.audio.muted)
	require.True(t, r.ctl.MusicOn())

	silent := New(Config{})
	silent.ToggleMusic()
	require.True(t, silent.MusicOn())
}

func TestNavigation(t *testing.T) {
	r := newRig([]int{1})
	r.ctl.Pause()
	r.ctl.ExitToMenu()
	r.ctl.Quit()
	require.Equal(t, []string{"menu"}, r.nav.scenes)
	require.Equal(t, 1, r.nav.quits)
	require.False(t, r.ctl.Paused())
}

func TestEmptyPanelIsComplete(t *testing.T) {
	r := newRig([]int{}, []int{1})
	require.Equal(t, 0, r.ctl.Total())
	require.True(t, r.next.Interactable())
	r.ctl.NextLevel()
	require.Equal(t, 1, r.ctl.Index())
}

// TestCompletionAggregation checks that Next is enabled exactly when the
// completed count reaches the total, after every signal.
func TestCompletionAggregation(t *testing.T) {
	r := newRig([]int{1, 2, 1})
	signals := 0
	for _, tr := range r.tracersByLvl[0] {
		for tr.State() != trace.ExerciseComplete {
			traceNext(tr)
			signals++
			require.Equal(t, signals, r.ctl.Completed())
			require.Equal(t, r.ctl.Completed() == r.ctl.Total(), r.next.Interactable())
		}
	}
	r.ctl.OnStrokeCompleted()
	require.Equal(t, r.ctl.Total(), r.ctl.Completed(), "extra signals are capped")
}

func TestSchedulerOrderAndCancel(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(2*time.Second, func() { got = append(got, "b") })
	a := s.After(time.Second, func() { got = append(got, "a") })
	c := s.After(time.Second, func() { got = append(got, "c") })
	require.Equal(t, 3, s.Len())

	c.Cancel()
	require.False(t, c.Pending())
	s.Advance(3 * time.Second)
	require.Equal(t, []string{"a", "b"}, got)
	require.False(t, a.Pending())
	require.Equal(t, 0, s.Len())
	require.Equal(t, 3*time.Second, s.Now())
}
