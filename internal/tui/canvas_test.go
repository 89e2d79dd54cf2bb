package tui

import (
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/tuitrace/internal/geom"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

func TestFitGridKeepsDrawingSquare(t *testing.T) {
	g := fitGrid(80, 22, 1)
	if g != (grid{left: 18, top: 1, cols: 44, rows: 22}) {
		t.Fatalf("unexpected grid: %+v", g)
	}
	narrow := fitGrid(10, 22, 0)
	if narrow != (grid{left: 0, top: 8, cols: 10, rows: 5}) {
		t.Fatalf("unexpected narrow grid: %+v", narrow)
	}
	if !fitGrid(1, 5, 0).empty() {
		t.Fatalf("expected empty grid for a one-column terminal")
	}
}

func TestGridPointAndCellRoundTrip(t *testing.T) {
	g := fitGrid(80, 22, 1)
	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(0.15, 0.5), geom.Pt(0.5, 0.5), geom.Pt(0.99, 0.99)} {
		c, r := g.cell(p)
		back, inside := g.point(g.left+c, g.top+r)
		if !inside {
			t.Fatalf("cell of %v must be on the drawing", p)
		}
		if math.Abs(back.X-p.X) > 1/float64(g.cols) || math.Abs(back.Y-p.Y) > 1/float64(g.rows) {
			t.Fatalf("round trip of %v drifted to %v", p, back)
		}
	}
	if _, inside := g.point(0, 0); inside {
		t.Fatalf("header cell must be outside the drawing")
	}
	if _, inside := g.point(g.left+g.cols, g.top); inside {
		t.Fatalf("cell right of the drawing must be outside")
	}
}

func twoPointTracer() (*trace.Tracer, *trace.InkBuffer) {
	a := trace.NewCheckpoint("a", geom.Pt(0.25, 0.5), 0.05)
	b := trace.NewCheckpoint("b", geom.Pt(0.75, 0.5), 0.05)
	path := &trace.StrokePath{
		Checkpoints: []*trace.Checkpoint{a, b},
		Region:      geom.Rect{X: 0.2, Y: 0.4, W: 0.6, H: 0.2},
		StrokeFill:  &trace.Toggle{},
		ParentFill:  &trace.Toggle{},
	}
	ink := &trace.InkBuffer{}
	return trace.New([]*trace.StrokePath{path}, trace.Options{Ink: ink}), ink
}

func TestLayerMarksCheckpointsInkAndRegion(t *testing.T) {
	tr, ink := twoPointTracer()
	g := fitGrid(20, 10, 0)

	tr.PointerDown(geom.Pt(0.25, 0.5))
	tr.PointerDrag(geom.Pt(0.5, 0.5))
	cells := layer(g, []*trace.Tracer{tr}, []*trace.InkBuffer{ink})

	if cells[5][5] != cellCurrent {
		t.Fatalf("expected current checkpoint at (5,5), got %v", cells[5][5])
	}
	if cells[5][15] != cellCheckpoint {
		t.Fatalf("expected next checkpoint at (15,5), got %v", cells[5][15])
	}
	if cells[5][10] != cellInk {
		t.Fatalf("expected ink at (10,5), got %v", cells[5][10])
	}
	if cells[4][8] != cellGuide {
		t.Fatalf("expected guide inside the region, got %v", cells[4][8])
	}
	if cells[0][0] != cellBlank {
		t.Fatalf("expected blank outside the region, got %v", cells[0][0])
	}

	tr.PointerUp(geom.Pt(0.75, 0.5))
	cells = layer(g, []*trace.Tracer{tr}, []*trace.InkBuffer{ink})
	if cells[4][8] != cellFilled {
		t.Fatalf("expected filled region after completion, got %v", cells[4][8])
	}
	if cells[0][0] != cellBackdrop {
		t.Fatalf("expected exercise backdrop after completion, got %v", cells[0][0])
	}
	if cells[5][5] != cellFilled {
		t.Fatalf("completed checkpoints must no longer be drawn, got %v", cells[5][5])
	}
}

func TestRenderCellsShape(t *testing.T) {
	tr, ink := twoPointTracer()
	g := fitGrid(20, 10, 0)
	out := renderCells(layer(g, []*trace.Tracer{tr}, []*trace.InkBuffer{ink}))
	lines := strings.Split(out, "\n")
	if len(lines) != g.rows {
		t.Fatalf("expected %d lines, got %d", g.rows, len(lines))
	}
	if !strings.Contains(out, glyphs[cellCurrent].text()) {
		t.Fatalf("expected the current checkpoint glyph in output")
	}
}
