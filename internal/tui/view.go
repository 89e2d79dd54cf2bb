// Package tui provides the Bubble Tea tracing interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuitrace/internal/level"
	"github.com/verte-zerg/tuitrace/internal/menu"
	"github.com/verte-zerg/tuitrace/internal/model"
)

var (
	backdropStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	guideStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	filledStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FB760"))
	inkStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#4D7CFE"))
	checkpointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	currentStyle    = checkpointStyle.Bold(true).Blink(true)
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	popupStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	itemStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	boxStyle        = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(1, 3)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.mode == modePlay && m.play != nil {
		return m.viewPlay()
	}
	return m.viewMenu()
}

// canvasGrid returns the drawing area: everything between the header and
// footer lines.
func (m *Model) canvasGrid() grid {
	if m.height < 3 {
		return fitGrid(m.width, m.height, 0)
	}
	return fitGrid(m.width, m.height-2, 1)
}

func (m *Model) viewPlay() string {
	s := m.play
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = m.height
	}
	var body string
	switch {
	case s.complete.Visible():
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			boxStyle.Render(titleStyle.Render("All exercises complete!")+"\n\nb back · esc menu · q quit"))
	case s.pausePanel.Visible():
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			boxStyle.Render(titleStyle.Render("Paused")+"\n\np resume · esc menu · q quit"))
	default:
		g := fitGrid(m.width, bodyHeight, 0)
		tracers := s.tracers()
		drawing := renderCells(layer(g, tracers, s.inkFor(tracers)))
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, drawing)
	}
	if m.height < 3 {
		return fitLines(body, m.width, m.height)
	}
	header := fitLines(m.renderHeader(), m.width, 1)
	footer := fitLines(m.renderFooter(), m.width, 1)
	return header + "\n" + fitLines(body, m.width, bodyHeight) + "\n" + footer
}

func (m *Model) renderHeader() string {
	s := m.play
	ctl := s.ctl
	segments := []string{titleStyle.Render(s.set.Name)}
	if ctl.Phase() == level.LevelActive {
		segments = append(segments,
			fmt.Sprintf("%s (%d/%d)", s.exerciseName(), ctl.Index()+1, len(ctl.Panels())),
			fmt.Sprintf("Strokes %d/%d", ctl.Completed(), ctl.Total()))
	}
	if s.levelPopup.Visible() {
		segments = append(segments, popupStyle.Render("Well done! Press n for the next one"))
	} else if s.strokePopup.Visible() {
		segments = append(segments, popupStyle.Render("Nice stroke!"))
	}
	if m.status != "" {
		segments = append(segments, footerStyle.Render(m.status))
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderFooter() string {
	s := m.play
	m.playKeys.Next.SetEnabled(s.next.Interactable())
	m.playKeys.Back.SetEnabled(s.back.Interactable())
	m.playKeys.Skip.SetEnabled(s.ctl.Phase() == level.LevelActive)
	music := "♪ on"
	if !s.ctl.MusicOn() {
		music = "♪ off"
	}
	return footerStyle.Render(music) + "  " + m.help.View(m.playKeys)
}

func (m *Model) viewMenu() string {
	var content string
	switch m.menu.Screen() {
	case menu.SettingsScreen:
		content = m.renderSettings()
	case menu.CategoryScreen:
		names := make([]string, 0, len(m.menu.Categories()))
		for _, c := range m.menu.Categories() {
			names = append(names, c.Name)
		}
		content = titleStyle.Render("Choose a category") + "\n\n" + renderItems(names, m.cursor)
	case menu.LetterScreen:
		content = titleStyle.Render("Pick from "+m.menu.Picking().Name) + "\n\n" + m.letters.View()
	default:
		content = titleStyle.Render("tuitrace") + "\n\n" + renderItems(mainItems, m.cursor)
	}
	if m.status != "" {
		content += "\n\n" + footerStyle.Render(m.status)
	}
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		return fitLines(boxStyle.Render(content), m.width, m.height)
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, boxStyle.Render(content))
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.menuKeys))
	return fitLines(body, m.width, bodyHeight) + "\n" + fitLines(footer, m.width, 1)
}

func (m *Model) renderSettings() string {
	cfg := m.opts.Config
	music := "on"
	if !cfg.Music {
		music = "off"
	}
	lines := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("Brush spacing      %.3f", cfg.BrushSpacing),
		fmt.Sprintf("Checkpoint radius  %.3f", cfg.CheckpointRadius),
		fmt.Sprintf("Popup duration     %s", cfg.PopupDuration),
		fmt.Sprintf("Music              %s (m to toggle)", music),
	}
	return strings.Join(lines, "\n")
}

func renderItems(items []string, cursor int) string {
	lines := make([]string, len(items))
	for i, item := range items {
		if i == cursor {
			lines[i] = selectedStyle.Render("> " + item)
		} else {
			lines[i] = itemStyle.Render("  " + item)
		}
	}
	return strings.Join(lines, "\n")
}

func buildLetterTable(set model.SetDef, height int) table.Model {
	columns := []table.Column{
		{Title: "Exercise", Width: 12},
		{Title: "Strokes", Width: 7},
	}
	rows := make([]table.Row, 0, len(set.Exercises))
	for _, ex := range set.Exercises {
		rows = append(rows, table.Row{ex.Name, fmt.Sprintf("%d", len(ex.Strokes))})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

// fitLines pads or cuts s to exactly width x height cells.
func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	clip := lipgloss.NewStyle().MaxWidth(width)
	for i, line := range lines {
		line = clip.Render(line)
		if w := lipgloss.Width(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		lines[i] = line
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
