// Package menu implements the main, settings, category and letter picker
// screens as a small state machine that hands scene changes to a Navigator.
package menu

import (
	"github.com/verte-zerg/tuitrace/internal/session"
)

// Screen is the visible menu screen.
type Screen int

const (
	// MainScreen offers start, settings and quit.
	MainScreen Screen = iota
	// SettingsScreen shows settings.
	SettingsScreen
	// CategoryScreen lists the exercise sets.
	CategoryScreen
	// LetterScreen lists the exercises of one set.
	LetterScreen
	// Closed means a scene was loaded or the program is quitting.
	Closed
)

func (s Screen) String() string {
	switch s {
	case MainScreen:
		return "main"
	case SettingsScreen:
		return "settings"
	case CategoryScreen:
		return "category"
	case LetterScreen:
		return "letters"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Navigator loads scenes and ends the program.
type Navigator interface {
	LoadScene(name string)
	Quit()
}

// Category is one entry of the category screen.
type Category struct {
	Name string
	Set  string
}

// Menu tracks the visible screen. It writes the selection into the session
// before handing control to the navigator.
type Menu struct {
	nav        Navigator
	sess       *session.Context
	categories []Category
	screen     Screen
	picking    Category
}

// New creates a menu on the main screen.
func New(nav Navigator, sess *session.Context, categories []Category) *Menu {
	return &Menu{nav: nav, sess: sess, categories: categories}
}

// Screen returns the visible screen.
func (m *Menu) Screen() Screen { return m.screen }

// Categories returns the category entries.
func (m *Menu) Categories() []Category { return m.categories }

// Picking returns the category whose letters are listed on LetterScreen.
func (m *Menu) Picking() Category { return m.picking }

// Open shows the main screen again, for example after leaving a scene.
func (m *Menu) Open() { m.screen = MainScreen }

// Start moves from the main screen to the category screen.
func (m *Menu) Start() {
	if m.screen == MainScreen {
		m.screen = CategoryScreen
	}
}

// Settings moves from the main screen to the settings screen.
func (m *Menu) Settings() {
	if m.screen == MainScreen {
		m.screen = SettingsScreen
	}
}

// BackFromSettings returns to the main screen.
func (m *Menu) BackFromSettings() {
	if m.screen == SettingsScreen {
		m.screen = MainScreen
	}
}

// BackToMain returns from the category screen to the main screen.
func (m *Menu) BackToMain() {
	if m.screen == CategoryScreen {
		m.screen = MainScreen
	}
}

// Back goes one screen up from wherever the menu is.
func (m *Menu) Back() {
	switch m.screen {
	case SettingsScreen:
		m.BackFromSettings()
	case CategoryScreen:
		m.BackToMain()
	case LetterScreen:
		m.screen = CategoryScreen
	}
}

// OpenCategory loads the set of the named category from its first exercise.
func (m *Menu) OpenCategory(name string) {
	cat, ok := m.find(name)
	if !ok || m.screen != CategoryScreen {
		return
	}
	m.sess.UseSet(cat.Name, cat.Set)
	m.load(cat.Set)
}

// PickLetters lists the exercises of the named category.
func (m *Menu) PickLetters(name string) {
	cat, ok := m.find(name)
	if !ok || m.screen != CategoryScreen {
		return
	}
	m.picking = cat
	m.screen = LetterScreen
}

// SelectLetter starts the picked category at the given exercise.
func (m *Menu) SelectLetter(exercise string) {
	if m.screen != LetterScreen || exercise == "" {
		return
	}
	m.sess.UseSet(m.picking.Name, m.picking.Set)
	m.sess.Select(exercise)
	m.load(m.picking.Set)
}

// Quit ends the program.
func (m *Menu) Quit() {
	m.screen = Closed
	if m.nav != nil {
		m.nav.Quit()
	}
}

func (m *Menu) load(scene string) {
	m.screen = Closed
	if m.nav != nil {
		m.nav.LoadScene(scene)
	}
}

func (m *Menu) find(name string) (Category, bool) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
