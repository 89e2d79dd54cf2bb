// Package tui provides the Bubble Tea tracing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuitrace/internal/geom"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

// grid maps the unit drawing square onto terminal cells. Cells are about
// twice as tall as wide, so a square drawing spans twice as many columns as
// rows.
type grid struct {
	left, top  int
	cols, rows int
}

// fitGrid centers the largest square drawing that fits a body of the given
// size starting at row top.
func fitGrid(width, height, top int) grid {
	rows := height
	if rows*2 > width {
		rows = width / 2
	}
	if rows < 1 {
		return grid{}
	}
	cols := rows * 2
	return grid{
		left: (width - cols) / 2,
		top:  top + (height-rows)/2,
		cols: cols,
		rows: rows,
	}
}

func (g grid) empty() bool {
	return g.cols == 0 || g.rows == 0
}

// point returns the drawing position of the center of terminal cell (x, y)
// and whether the cell lies on the drawing.
func (g grid) point(x, y int) (geom.Point, bool) {
	if g.empty() {
		return geom.Point{}, false
	}
	p := geom.Pt(
		(float64(x-g.left)+0.5)/float64(g.cols),
		(float64(y-g.top)+0.5)/float64(g.rows),
	)
	inside := x >= g.left && x < g.left+g.cols && y >= g.top && y < g.top+g.rows
	return p, inside
}

// cell returns the drawing-relative column and row holding p.
func (g grid) cell(p geom.Point) (int, int) {
	return clamp(int(p.X*float64(g.cols)), 0, g.cols-1), clamp(int(p.Y*float64(g.rows)), 0, g.rows-1)
}

type cellKind int

const (
	cellBlank cellKind = iota
	cellBackdrop
	cellGuide
	cellFilled
	cellInk
	cellCheckpoint
	cellCurrent
)

type glyph struct {
	r        rune
	fallback rune
	style    lipgloss.Style
}

var glyphs = map[cellKind]glyph{
	cellBlank:      {' ', ' ', lipgloss.NewStyle()},
	cellBackdrop:   {'·', '.', backdropStyle},
	cellGuide:      {'░', ':', guideStyle},
	cellFilled:     {'█', '#', filledStyle},
	cellInk:        {'•', '*', inkStyle},
	cellCheckpoint: {'●', 'o', checkpointStyle},
	cellCurrent:    {'◉', '@', currentStyle},
}

// text renders the glyph, falling back to ASCII where the terminal would
// draw the symbol wider than one cell.
func (g glyph) text() string {
	r := g.r
	if runewidth.RuneWidth(r) != 1 {
		r = g.fallback
	}
	return g.style.Render(string(r))
}

// layer computes the cell kinds of the drawing for the given tracers.
func layer(g grid, tracers []*trace.Tracer, inks []*trace.InkBuffer) [][]cellKind {
	cells := make([][]cellKind, g.rows)
	for r := range cells {
		cells[r] = make([]cellKind, g.cols)
	}
	if g.empty() {
		return cells
	}

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			p, _ := g.point(g.left+c, g.top+r)
			cells[r][c] = regionKind(tracers, p)
		}
	}
	for _, ink := range inks {
		if ink == nil {
			continue
		}
		for _, m := range ink.Marks() {
			c, r := g.cell(m.Pos)
			cells[r][c] = cellInk
		}
	}
	for _, t := range tracers {
		current := currentCheckpoint(t)
		for _, p := range t.Paths() {
			if p == nil {
				continue
			}
			for _, cp := range p.Checkpoints {
				if !cp.Enabled() {
					continue
				}
				c, r := g.cell(cp.Pos)
				if cp == current {
					cells[r][c] = cellCurrent
				} else {
					cells[r][c] = cellCheckpoint
				}
			}
		}
	}
	return cells
}

func regionKind(tracers []*trace.Tracer, p geom.Point) cellKind {
	kind := cellBlank
	for _, t := range tracers {
		paths := t.Paths()
		if len(paths) > 0 && paths[0] != nil && fillActive(paths[0].ParentFill) && kind == cellBlank {
			kind = cellBackdrop
		}
		for _, path := range paths {
			if path == nil || !path.Contains(p) {
				continue
			}
			if fillActive(path.StrokeFill) {
				return cellFilled
			}
			kind = cellGuide
		}
	}
	return kind
}

func currentCheckpoint(t *trace.Tracer) *trace.Checkpoint {
	if t.State() != trace.AwaitingStart && t.State() != trace.Tracing {
		return nil
	}
	return t.Current().Checkpoint(t.CheckpointIndex())
}

func fillActive(f trace.Fill) bool {
	return f != nil && f.Active()
}

// renderCells turns cell kinds into styled lines.
func renderCells(cells [][]cellKind) string {
	lines := make([]string, len(cells))
	for r, row := range cells {
		var b strings.Builder
		for _, k := range row {
			b.WriteString(glyphs[k].text())
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
