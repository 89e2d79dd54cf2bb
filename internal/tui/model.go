// Package tui provides the Bubble Tea tracing interface.
package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuitrace/internal/catalog"
	"github.com/verte-zerg/tuitrace/internal/logging"
	"github.com/verte-zerg/tuitrace/internal/menu"
	"github.com/verte-zerg/tuitrace/internal/model"
	"github.com/verte-zerg/tuitrace/internal/session"
	"github.com/verte-zerg/tuitrace/internal/snapshot"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

// FrameInterval is the delay between frame ticks.
const FrameInterval = 33 * time.Millisecond

type frameMsg time.Time

type mode int

const (
	modeMenu mode = iota
	modePlay
)

var mainItems = []string{"Start", "Settings", "Quit"}

// Options configures the model.
type Options struct {
	Config     model.Config
	Categories []menu.Category
	// Load resolves a set name. Nil means built-in sets only.
	Load        func(name string) (model.SetDef, error)
	SnapshotDir string
	Logger      *slog.Logger
}

// Model implements the Bubble Tea tracing UI.
type Model struct {
	opts Options
	log  *slog.Logger

	playKeys playKeyMap
	menuKeys menuKeyMap
	help     help.Model

	width  int
	height int

	mode    mode
	sess    *session.Context
	menu    *menu.Menu
	cursor  int
	letters table.Model
	play    *scene

	pendingScene string
	quitting     bool
	status       string
	lastFrame    time.Time
}

// navigator defers scene changes until the current message is handled, so
// the controller and menu never see the model change under them.
type navigator struct {
	m *Model
}

func (n navigator) LoadScene(name string) { n.m.pendingScene = name }

func (n navigator) Quit() { n.m.quitting = true }

// NewModel constructs the tracing TUI. With Config.Set set it starts playing
// that set right away, otherwise it opens the main menu.
func NewModel(opts Options) *Model {
	if opts.Load == nil {
		opts.Load = loadBuiltin
	}
	if len(opts.Categories) == 0 {
		for _, name := range catalog.BuiltinNames() {
			opts.Categories = append(opts.Categories, menu.Category{Name: name, Set: name})
		}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	m := &Model{
		opts:     opts,
		log:      log,
		playKeys: newPlayKeys(),
		menuKeys: newMenuKeys(),
		help:     help.New(),
		sess:     session.New("", ""),
		letters:  buildLetterTable(model.SetDef{}, 3),
	}
	m.playKeys.Snapshot.SetEnabled(opts.Config.Debug)
	m.menu = menu.New(navigator{m}, m.sess, opts.Categories)
	m.menu.Open()
	if opts.Config.Set != "" {
		m.sess.UseSet("", opts.Config.Set)
		m.sess.Select(opts.Config.Exercise)
		m.loadScene(opts.Config.Set)
	}
	return m
}

func loadBuiltin(name string) (model.SetDef, error) {
	set, ok := catalog.Builtin(name)
	if !ok {
		return model.SetDef{}, fmt.Errorf("unknown set %q", name)
	}
	return set, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.letters.SetHeight(m.tableHeight())
		return m, nil
	case frameMsg:
		m.tick(time.Time(msg))
		return m, m.flush(frame())
	case tea.KeyMsg:
		if m.mode == modePlay {
			m.handlePlayKey(msg)
		} else {
			cmd := m.handleMenuKey(msg)
			return m, m.flush(cmd)
		}
		return m, m.flush(nil)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.flush(nil)
	default:
		return m, nil
	}
}

func (m *Model) tick(now time.Time) {
	elapsed := time.Duration(0)
	if !m.lastFrame.IsZero() && now.After(m.lastFrame) {
		elapsed = now.Sub(m.lastFrame)
	}
	m.lastFrame = now
	if m.play != nil {
		m.play.ctl.Tick(elapsed)
	}
}

// flush applies navigation requested while handling the last message.
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	if name := m.pendingScene; name != "" {
		m.pendingScene = ""
		m.loadScene(name)
	}
	return cmd
}

func (m *Model) loadScene(name string) {
	if name == MenuScene {
		m.play = nil
		m.mode = modeMenu
		m.sess.Clear()
		m.menu.Open()
		m.cursor = 0
		return
	}
	set, err := m.opts.Load(name)
	if err != nil {
		m.log.Error("failed to load set", "set", name, "err", err)
		m.status = fmt.Sprintf("failed to load %s: %v", name, err)
		m.play = nil
		m.mode = modeMenu
		m.menu.Open()
		return
	}
	if m.sess.Category == "" {
		m.sess.Category = set.Category
	}
	m.play = newScene(set, m.opts.Config, navigator{m})
	if ex, ok := m.sess.Selected(); ok {
		if idx := catalog.Index(set, ex); idx > 0 {
			m.play.ctl.EnterLevel(idx)
		}
	}
	m.mode = modePlay
	m.status = ""
	m.log.Info("play started", "session", m.sess.ID, "set", set.Name, "exercise", m.play.exerciseName())
}

func (m *Model) handlePlayKey(msg tea.KeyMsg) {
	s := m.play
	ctl := s.ctl
	switch {
	case key.Matches(msg, m.playKeys.Quit):
		ctl.Quit()
	case key.Matches(msg, m.playKeys.Menu):
		ctl.ExitToMenu()
	case key.Matches(msg, m.playKeys.Pause):
		if ctl.Paused() {
			ctl.Resume()
		} else {
			ctl.Pause()
			m.releasePointer()
		}
	case key.Matches(msg, m.playKeys.Music):
		ctl.ToggleMusic()
	case key.Matches(msg, m.playKeys.Next):
		ctl.NextLevel()
	case key.Matches(msg, m.playKeys.Back):
		ctl.BackLevel()
	case key.Matches(msg, m.playKeys.Skip):
		ctl.SkipLevel()
	case key.Matches(msg, m.playKeys.Reset):
		ctl.EnterLevel(ctl.Index())
	case key.Matches(msg, m.playKeys.Snapshot):
		m.saveSnapshot()
	}
}

// releasePointer forgets a drag in progress so it cannot resume after a
// pause.
func (m *Model) releasePointer() {
	if m.play == nil {
		return
	}
	m.play.pressed = false
	for _, t := range m.play.tracers() {
		t.Cancel()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	s := m.play
	if m.mode != modePlay || s == nil || s.ctl.Paused() {
		return
	}
	tracers := s.tracers()
	if len(tracers) == 0 {
		return
	}
	pt, inside := m.canvasGrid().point(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		s.pressed = true
		for _, t := range tracers {
			t.PointerDown(pt)
		}
	case tea.MouseActionMotion:
		if !s.pressed {
			return
		}
		for _, t := range tracers {
			t.PointerDrag(pt)
		}
	case tea.MouseActionRelease:
		if !s.pressed {
			return
		}
		s.pressed = false
		for _, t := range tracers {
			t.PointerUp(pt)
		}
	}
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.menuKeys.Quit) {
		m.menu.Quit()
		return nil
	}
	switch m.menu.Screen() {
	case menu.MainScreen:
		switch {
		case key.Matches(msg, m.menuKeys.Up):
			m.moveCursor(-1, len(mainItems))
		case key.Matches(msg, m.menuKeys.Down):
			m.moveCursor(1, len(mainItems))
		case key.Matches(msg, m.menuKeys.Select):
			switch mainItems[m.cursor] {
			case "Start":
				m.menu.Start()
			case "Settings":
				m.menu.Settings()
			case "Quit":
				m.menu.Quit()
			}
			m.cursor = 0
		}
	case menu.SettingsScreen:
		switch {
		case key.Matches(msg, m.menuKeys.Music):
			m.opts.Config.Music = !m.opts.Config.Music
		case key.Matches(msg, m.menuKeys.Back):
			m.menu.BackFromSettings()
		}
	case menu.CategoryScreen:
		cats := m.menu.Categories()
		switch {
		case key.Matches(msg, m.menuKeys.Up):
			m.moveCursor(-1, len(cats))
		case key.Matches(msg, m.menuKeys.Down):
			m.moveCursor(1, len(cats))
		case key.Matches(msg, m.menuKeys.Back):
			m.menu.BackToMain()
			m.cursor = 0
		case key.Matches(msg, m.menuKeys.Select):
			if m.cursor < len(cats) {
				m.menu.OpenCategory(cats[m.cursor].Name)
			}
		case key.Matches(msg, m.menuKeys.Letters):
			if m.cursor < len(cats) {
				m.openLetters(cats[m.cursor])
			}
		}
	case menu.LetterScreen:
		switch {
		case key.Matches(msg, m.menuKeys.Back):
			m.menu.Back()
		case key.Matches(msg, m.menuKeys.Select):
			if row := m.letters.SelectedRow(); len(row) > 0 {
				m.menu.SelectLetter(row[0])
			}
		default:
			var cmd tea.Cmd
			m.letters, cmd = m.letters.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) moveCursor(delta, n int) {
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

func (m *Model) openLetters(cat menu.Category) {
	set, err := m.opts.Load(cat.Set)
	if err != nil {
		m.log.Error("failed to load set", "set", cat.Set, "err", err)
		m.status = fmt.Sprintf("failed to load %s: %v", cat.Set, err)
		return
	}
	m.letters = buildLetterTable(set, m.tableHeight())
	m.status = ""
	m.menu.PickLetters(cat.Name)
}

func (m *Model) tableHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) saveSnapshot() {
	if !m.opts.Config.Debug || m.play == nil {
		return
	}
	tracers := m.play.tracers()
	if len(tracers) == 0 {
		return
	}
	var paths []*trace.StrokePath
	var ink []trace.InkMark
	for _, t := range tracers {
		paths = append(paths, t.Paths()...)
		if buf := m.play.inks[t]; buf != nil {
			ink = append(ink, buf.Marks()...)
		}
	}
	name := fmt.Sprintf("%s-%s-%s.png", m.play.set.Name, m.play.exerciseName(), time.Now().Format("20060102-150405.000"))
	path := filepath.Join(m.opts.SnapshotDir, safeFileName(name))
	if err := snapshot.SavePNG(path, paths, snapshot.Options{Ink: ink, ShowDisabled: true}); err != nil {
		m.log.Error("failed to save snapshot", "err", err)
		m.status = fmt.Sprintf("snapshot failed: %v", err)
		return
	}
	m.log.Debug("snapshot saved", "path", path)
	m.status = "saved " + path
}

func safeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}
		return r
	}, name)
}
