// Package tui provides the Bubble Tea tracing interface.
package tui

import "github.com/charmbracelet/bubbles/key"

type playKeyMap struct {
	Next     key.Binding
	Back     key.Binding
	Skip     key.Binding
	Reset    key.Binding
	Pause    key.Binding
	Music    key.Binding
	Menu     key.Binding
	Quit     key.Binding
	Snapshot key.Binding
}

func newPlayKeys() playKeyMap {
	return playKeyMap{
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Back:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Music:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")),
		Menu:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Snapshot: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "snapshot"), key.WithDisabled()),
	}
}

// ShortHelp implements help.KeyMap.
func (k playKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Skip, k.Reset, k.Pause, k.Music, k.Menu, k.Quit, k.Snapshot}
}

// FullHelp implements help.KeyMap.
func (k playKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type menuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Letters key.Binding
	Music   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func newMenuKeys() menuKeyMap {
	return menuKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Letters: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "pick exercise")),
		Music:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Letters, k.Music, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
