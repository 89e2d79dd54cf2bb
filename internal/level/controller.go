package level

import (
	"time"
)

// DefaultPopupDuration is how long a transient popup stays on screen.
const DefaultPopupDuration = 1500 * time.Millisecond

// Phase is the controller's position in the level sequence.
type Phase int

const (
	// NoLevels means the controller has no panels and does nothing.
	NoLevels Phase = iota
	// LevelActive means a panel is shown and being traced.
	LevelActive
	// AllLevelsComplete shows the completion panel. Next and Skip do nothing
	// here; BackLevel is the only way out, back to the last level.
	AllLevelsComplete
)

func (p Phase) String() string {
	switch p {
	case NoLevels:
		return "no-levels"
	case LevelActive:
		return "level-active"
	case AllLevelsComplete:
		return "all-levels-complete"
	default:
		return "unknown"
	}
}

// Config wires a controller to its panels and optional UI handles. Any nil
// handle is treated as absent.
type Config struct {
	Panels        []*Panel
	CompletePanel Widget
	StrokePopup   Widget
	LevelPopup    Widget
	PopupDuration time.Duration
	Next          Affordance
	Back          Affordance
	PausePanel    Widget
	Music         AudioOutput
	Navigator     Navigator
	// MenuScene is loaded by ExitToMenu.
	MenuScene string
}

// Controller sequences exercises and aggregates stroke completion.
type Controller struct {
	cfg   Config
	sched Scheduler
	clock *Clock

	phase     Phase
	index     int
	completed int
	total     int

	paused  bool
	musicOn bool

	strokeHide *Deferred
	levelHide  *Deferred
}

// New builds a controller and registers it as the stroke listener of every
// tracer in every panel. Call Start to show the first level.
func New(cfg Config) *Controller {
	if cfg.PopupDuration <= 0 {
		cfg.PopupDuration = DefaultPopupDuration
	}
	c := &Controller{
		cfg:     cfg,
		clock:   NewClock(),
		musicOn: true,
	}
	for _, p := range cfg.Panels {
		if p == nil {
			continue
		}
		for _, t := range p.Tracers {
			if t != nil {
				t.SetListener(c)
			}
		}
	}
	return c
}

// Start hides everything and enters the first level if there is one.
func (c *Controller) Start() {
	for _, p := range c.cfg.Panels {
		if p != nil {
			p.SetVisible(false)
		}
	}
	show(c.cfg.CompletePanel, false)
	show(c.cfg.StrokePopup, false)
	show(c.cfg.LevelPopup, false)
	show(c.cfg.PausePanel, false)
	enable(c.cfg.Next, false)
	enable(c.cfg.Back, false)

	c.phase = NoLevels
	c.index = 0
	if len(c.cfg.Panels) > 0 {
		c.EnterLevel(0)
	}
}

// EnterLevel shows the panel at idx, resets its tracers and recomputes the
// stroke total. Out-of-range indices are ignored.
func (c *Controller) EnterLevel(idx int) {
	if idx < 0 || idx >= len(c.cfg.Panels) {
		return
	}
	if c.index != idx {
		c.hidePanel(c.index)
	}
	show(c.cfg.CompletePanel, false)

	c.index = idx
	c.phase = LevelActive
	panel := c.cfg.Panels[idx]
	if panel != nil {
		panel.SetVisible(true)
	}
	panel.ResetTracing()
	c.total = panel.StrokeCount()
	c.completed = 0

	// An exercise without strokes is trivially complete.
	enable(c.cfg.Next, c.total == 0)
	enable(c.cfg.Back, idx > 0)
	logger().Info("level started", "level", idx, "strokes", c.total)
}

// OnStrokeCompleted counts a finished stroke of the active level. When all
// strokes are done the level popup is shown and Next is unlocked.
func (c *Controller) OnStrokeCompleted() {
	if c.phase != LevelActive || c.completed >= c.total {
		return
	}
	c.completed++
	logger().Info("stroke done", "completed", c.completed, "total", c.total, "level", c.index)
	c.strokeHide = c.showPopup(c.cfg.StrokePopup, c.strokeHide)

	if c.completed == c.total {
		logger().Info("level completed", "level", c.index)
		c.levelHide = c.showPopup(c.cfg.LevelPopup, c.levelHide)
		enable(c.cfg.Next, true)
	}
}

// NextLevel advances once the active level is complete.
func (c *Controller) NextLevel() {
	if c.phase != LevelActive || !c.LevelComplete() {
		return
	}
	c.advance()
}

// SkipLevel advances regardless of completion.
func (c *Controller) SkipLevel() {
	if c.phase != LevelActive {
		return
	}
	logger().Info("level skipped", "level", c.index)
	c.advance()
}

// BackLevel returns to the previous level. At the first level it does nothing.
func (c *Controller) BackLevel() {
	if c.phase == NoLevels || c.index <= 0 {
		return
	}
	c.EnterLevel(c.index - 1)
}

// Pause freezes timed effects and shows the pause panel.
func (c *Controller) Pause() {
	if c.paused {
		return
	}
	show(c.cfg.PausePanel, true)
	c.clock.SetScale(0)
	c.paused = true
	logger().Debug("paused")
}

// Resume restores time and hides the pause panel.
func (c *Controller) Resume() {
	if !c.paused {
		return
	}
	show(c.cfg.PausePanel, false)
	c.clock.SetScale(1)
	c.paused = false
	logger().Debug("resumed")
}

// ToggleMusic flips background music. Without an audio output it does nothing.
func (c *Controller) ToggleMusic() {
	if c.cfg.Music == nil {
		return
	}
	c.musicOn = !c.musicOn
	c.cfg.Music.SetMuted(!c.musicOn)
	logger().Debug("music toggled", "on", c.musicOn)
}

// ExitToMenu loads the menu scene through the navigator.
func (c *Controller) ExitToMenu() {
	if c.cfg.Navigator == nil {
		return
	}
	c.Resume()
	c.cfg.Navigator.LoadScene(c.cfg.MenuScene)
}

// Quit ends the program through the navigator.
func (c *Controller) Quit() {
	if c.cfg.Navigator == nil {
		return
	}
	c.cfg.Navigator.Quit()
}

// Tick advances timed effects by elapsed host time, scaled by the clock.
func (c *Controller) Tick(elapsed time.Duration) {
	c.sched.Advance(c.clock.Scaled(elapsed))
}

// Phase returns the controller's phase.
func (c *Controller) Phase() Phase { return c.phase }

// Index returns the active level index. In AllLevelsComplete it equals the
// number of panels.
func (c *Controller) Index() int { return c.index }

// Completed returns the strokes completed since the level was entered.
func (c *Controller) Completed() int { return c.completed }

// Total returns the number of strokes in the active level.
func (c *Controller) Total() int { return c.total }

// LevelComplete reports whether every stroke of the active level is done.
func (c *Controller) LevelComplete() bool {
	return c.phase == LevelActive && c.completed == c.total
}

// Paused reports whether the game is paused.
func (c *Controller) Paused() bool { return c.paused }

// MusicOn reports whether music is playing.
func (c *Controller) MusicOn() bool { return c.musicOn }

// TimeScale returns the clock's scale.
func (c *Controller) TimeScale() float64 { return c.clock.Scale() }

// Panels returns the controller's panels.
func (c *Controller) Panels() []*Panel { return c.cfg.Panels }

// Active returns the panel being traced, or nil.
func (c *Controller) Active() *Panel {
	if c.phase != LevelActive {
		return nil
	}
	return c.cfg.Panels[c.index]
}

func (c *Controller) advance() {
	next := c.index + 1
	if next < len(c.cfg.Panels) {
		c.EnterLevel(next)
		return
	}
	c.hidePanel(c.index)
	c.index = len(c.cfg.Panels)
	c.phase = AllLevelsComplete
	show(c.cfg.CompletePanel, true)
	enable(c.cfg.Next, false)
	enable(c.cfg.Back, false)
	logger().Info("all levels completed")
}

func (c *Controller) hidePanel(idx int) {
	if idx < 0 || idx >= len(c.cfg.Panels) || c.cfg.Panels[idx] == nil {
		return
	}
	c.cfg.Panels[idx].SetVisible(false)
}

// showPopup shows w and schedules its hide, replacing a pending hide so
// overlapping popups never cut each other short.
func (c *Controller) showPopup(w Widget, prev *Deferred) *Deferred {
	if w == nil {
		return prev
	}
	prev.Cancel()
	w.SetVisible(true)
	return c.sched.After(c.cfg.PopupDuration, func() {
		w.SetVisible(false)
	})
}
