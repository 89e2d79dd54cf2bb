package menu

import (
	"testing"

	"github.com/verte-zerg/tuitrace/internal/session"
)

type recordingNav struct {
	scenes []string
	quit   bool
}

func (n *recordingNav) LoadScene(name string) { n.scenes = append(n.scenes, name) }
func (n *recordingNav) Quit()                 { n.quit = true }

func newMenu() (*Menu, *recordingNav, *session.Context) {
	nav := &recordingNav{}
	sess := session.New("", "")
	m := New(nav, sess, []Category{
		{Name: "Alphabet", Set: "alphabet"},
		{Name: "Shapes", Set: "shapes"},
	})
	return m, nav, sess
}

func TestMainSettingsRoundTrip(t *testing.T) {
	m, _, _ := newMenu()
	m.Settings()
	if m.Screen() != SettingsScreen {
		t.Fatalf("expected settings, got %s", m.Screen())
	}
	m.Start()
	if m.Screen() != SettingsScreen {
		t.Fatalf("start must only work from main, got %s", m.Screen())
	}
	m.BackFromSettings()
	if m.Screen() != MainScreen {
		t.Fatalf("expected main, got %s", m.Screen())
	}
}

func TestOpenCategoryLoadsSet(t *testing.T) {
	m, nav, sess := newMenu()
	m.OpenCategory("Shapes")
	if len(nav.scenes) != 0 {
		t.Fatalf("categories are only reachable from the category screen")
	}
	m.Start()
	m.OpenCategory("Nope")
	m.OpenCategory("Shapes")
	if len(nav.scenes) != 1 || nav.scenes[0] != "shapes" {
		t.Fatalf("unexpected scenes: %v", nav.scenes)
	}
	if sess.SetName != "shapes" || sess.Category != "Shapes" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if m.Screen() != Closed {
		t.Fatalf("expected closed menu, got %s", m.Screen())
	}
}

func TestSelectLetter(t *testing.T) {
	m, nav, sess := newMenu()
	m.Start()
	m.PickLetters("Alphabet")
	if m.Screen() != LetterScreen || m.Picking().Set != "alphabet" {
		t.Fatalf("expected letter screen for alphabet, got %s %+v", m.Screen(), m.Picking())
	}
	m.Back()
	if m.Screen() != CategoryScreen {
		t.Fatalf("expected back to categories, got %s", m.Screen())
	}
	m.PickLetters("Alphabet")
	m.SelectLetter("E")
	if got, ok := sess.Selected(); !ok || got != "E" {
		t.Fatalf("expected E selected, got %q", got)
	}
	if len(nav.scenes) != 1 || nav.scenes[0] != "alphabet" {
		t.Fatalf("unexpected scenes: %v", nav.scenes)
	}
}

func TestQuit(t *testing.T) {
	m, nav, _ := newMenu()
	m.Quit()
	if !nav.quit || m.Screen() != Closed {
		t.Fatalf("expected quit")
	}
}
