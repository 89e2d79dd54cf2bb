package catalog

import (
	"fmt"

	"github.com/verte-zerg/tuitrace/internal/geom"
	"github.com/verte-zerg/tuitrace/internal/model"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

// Region kinds accepted in set files.
const (
	RegionRect    = "rect"
	RegionCircle  = "circle"
	RegionPolygon = "polygon"
	RegionCapsule = "capsule"
)

// DefaultStrokeWidth is the half-width of the capsule used when a stroke has
// no region.
const DefaultStrokeWidth = 0.09

// BuildOptions tunes Build.
type BuildOptions struct {
	CheckpointRadius float64
	StrokeWidth      float64
}

// Build converts an exercise into tracer paths. Every path gets a stroke
// fill; the first also carries the exercise fill.
func Build(ex model.ExerciseDef, opts BuildOptions) []*trace.StrokePath {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultStrokeWidth
	}
	paths := make([]*trace.StrokePath, 0, len(ex.Strokes))
	for i, st := range ex.Strokes {
		pts := points(st.Points)
		p := &trace.StrokePath{
			Name:       st.Name,
			Region:     region(st.Region, pts, opts.StrokeWidth),
			StrokeFill: &trace.Toggle{},
		}
		if i == 0 {
			p.ParentFill = &trace.Toggle{}
		}
		for j, pt := range pts {
			id := fmt.Sprintf("%s/%d/%d", ex.Name, i, j)
			p.Checkpoints = append(p.Checkpoints, trace.NewCheckpoint(id, pt, opts.CheckpointRadius))
		}
		paths = append(paths, p)
	}
	return paths
}

// Index returns the position of the named exercise in set, or -1.
func Index(set model.SetDef, name string) int {
	for i, ex := range set.Exercises {
		if ex.Name == name {
			return i
		}
	}
	return -1
}

// Summarize describes set for listings.
func Summarize(set model.SetDef, source string) model.SetSummary {
	strokes := 0
	for _, ex := range set.Exercises {
		strokes += len(ex.Strokes)
	}
	return model.SetSummary{
		Name:      set.Name,
		Category:  set.Category,
		Exercises: len(set.Exercises),
		Strokes:   strokes,
		Source:    source,
	}
}

// Points converts authored [x, y] pairs into points. Malformed pairs are
// skipped; Validate reports them.
func Points(raw [][]float64) []geom.Point {
	return points(raw)
}

func points(raw [][]float64) []geom.Point {
	out := make([]geom.Point, 0, len(raw))
	for _, p := range raw {
		if len(p) != 2 {
			continue
		}
		out = append(out, geom.Pt(p[0], p[1]))
	}
	return out
}

// Region converts a region definition, defaulting to a capsule along the
// stroke's checkpoints.
func Region(def *model.RegionDef, stroke []geom.Point, width float64) geom.Region {
	if width <= 0 {
		width = DefaultStrokeWidth
	}
	return region(def, stroke, width)
}

func region(def *model.RegionDef, stroke []geom.Point, width float64) geom.Region {
	if def == nil {
		return geom.Capsule{Points: stroke, Radius: width}
	}
	switch def.Kind {
	case RegionRect:
		return geom.Rect{X: def.X, Y: def.Y, W: def.W, H: def.H}
	case RegionCircle:
		return geom.Circle{Center: geom.Pt(def.X, def.Y), Radius: def.Radius}
	case RegionPolygon:
		return geom.NewPolygon(points(def.Points))
	default:
		pts := points(def.Points)
		if len(pts) == 0 {
			pts = stroke
		}
		r := def.Radius
		if r <= 0 {
			r = width
		}
		return geom.Capsule{Points: pts, Radius: r}
	}
}
