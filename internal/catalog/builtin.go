// Package catalog provides exercise sets: the built-in alphabet, numbers and
// shapes, TOML set files, validation and conversion into tracer paths.
package catalog

import (
	"math"
	"sort"

	"github.com/verte-zerg/tuitrace/internal/model"
)

// Built-in set names.
const (
	SetAlphabet = "alphabet"
	SetNumbers  = "numbers"
	SetShapes   = "shapes"
)

// maxGap is the longest segment left between two authored checkpoints;
// longer segments get intermediate checkpoints.
const maxGap = 0.3

// Builtin returns a copy of the named built-in set.
func Builtin(name string) (model.SetDef, bool) {
	build, ok := builtins[name]
	if !ok {
		return model.SetDef{}, false
	}
	return build(), true
}

// BuiltinNames returns the built-in set names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtins = map[string]func() model.SetDef{
	SetAlphabet: alphabet,
	SetNumbers:  numbers,
	SetShapes:   shapes,
}

func alphabet() model.SetDef {
	return model.SetDef{
		Name:     SetAlphabet,
		Category: "alphabet",
		Exercises: []model.ExerciseDef{
			exercise("A",
				line("left", 0.2, 0.9, 0.5, 0.1),
				line("right", 0.5, 0.1, 0.8, 0.9),
				line("bar", 0.32, 0.6, 0.68, 0.6),
			),
			exercise("C",
				stroke("arc", arc(0.55, 0.5, 0.35, -40, -320, 8)...),
			),
			exercise("E",
				line("stem", 0.3, 0.1, 0.3, 0.9),
				line("top", 0.3, 0.1, 0.75, 0.1),
				line("middle", 0.3, 0.5, 0.65, 0.5),
				line("bottom", 0.3, 0.9, 0.75, 0.9),
			),
			exercise("F",
				line("stem", 0.3, 0.1, 0.3, 0.9),
				line("top", 0.3, 0.1, 0.75, 0.1),
				line("middle", 0.3, 0.5, 0.65, 0.5),
			),
			exercise("H",
				line("left", 0.25, 0.1, 0.25, 0.9),
				line("right", 0.75, 0.1, 0.75, 0.9),
				line("bar", 0.25, 0.5, 0.75, 0.5),
			),
			exercise("I",
				line("stem", 0.5, 0.1, 0.5, 0.9),
			),
			exercise("L",
				stroke("corner", 0.3, 0.1, 0.3, 0.9, 0.75, 0.9),
			),
			exercise("O",
				stroke("ring", arc(0.5, 0.5, 0.38, -90, -450, 12)...),
			),
			exercise("T",
				line("top", 0.15, 0.1, 0.85, 0.1),
				line("stem", 0.5, 0.1, 0.5, 0.9),
			),
			exercise("V",
				stroke("vee", 0.2, 0.1, 0.5, 0.9, 0.8, 0.1),
			),
			exercise("X",
				line("down", 0.2, 0.1, 0.8, 0.9),
				line("up", 0.8, 0.1, 0.2, 0.9),
			),
			exercise("Z",
				stroke("zed", 0.2, 0.1, 0.8, 0.1, 0.2, 0.9, 0.8, 0.9),
			),
		},
	}
}

func numbers() model.SetDef {
	two := append(arc(0.5, 0.33, 0.23, -160, 30, 5), 0.25, 0.9, 0.8, 0.9)
	three := append(arc(0.48, 0.3, 0.2, -150, 90, 5), arc(0.48, 0.7, 0.2, -90, 150, 5)[2:]...)
	return model.SetDef{
		Name:     SetNumbers,
		Category: "numbers",
		Exercises: []model.ExerciseDef{
			exercise("0", stroke("ring", ellipse(0.5, 0.5, 0.28, 0.4, -90, 270, 12)...)),
			exercise("1",
				line("flag", 0.35, 0.25, 0.55, 0.1),
				line("stem", 0.55, 0.1, 0.55, 0.9),
			),
			exercise("2", stroke("curve", two...)),
			exercise("3", stroke("bumps", three...)),
			exercise("4",
				stroke("arm", 0.6, 0.1, 0.2, 0.65, 0.8, 0.65),
				line("stem", 0.6, 0.1, 0.6, 0.9),
			),
			exercise("7",
				stroke("seven", 0.2, 0.1, 0.8, 0.1, 0.4, 0.9),
			),
		},
	}
}

func shapes() model.SetDef {
	return model.SetDef{
		Name:     SetShapes,
		Category: "shapes",
		Exercises: []model.ExerciseDef{
			exercise("line", line("line", 0.15, 0.5, 0.85, 0.5)),
			exercise("square",
				line("top", 0.2, 0.2, 0.8, 0.2),
				line("right", 0.8, 0.2, 0.8, 0.8),
				line("bottom", 0.8, 0.8, 0.2, 0.8),
				line("left", 0.2, 0.8, 0.2, 0.2),
			),
			exercise("triangle",
				stroke("outline", 0.5, 0.15, 0.85, 0.85, 0.15, 0.85, 0.5, 0.15),
			),
			exercise("circle", stroke("ring", arc(0.5, 0.5, 0.35, -90, 270, 12)...)),
			exercise("zigzag",
				stroke("zigzag", 0.1, 0.7, 0.3, 0.3, 0.5, 0.7, 0.7, 0.3, 0.9, 0.7),
			),
		},
	}
}

func exercise(name string, strokes ...model.StrokeDef) model.ExerciseDef {
	return model.ExerciseDef{Name: name, Strokes: strokes}
}

func line(name string, x1, y1, x2, y2 float64) model.StrokeDef {
	return stroke(name, x1, y1, x2, y2)
}

// stroke builds a stroke from flat x, y coordinates, subdividing long
// segments so checkpoints are never more than maxGap apart.
func stroke(name string, coords ...float64) model.StrokeDef {
	var pts [][]float64
	for i := 0; i+1 < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		if len(pts) > 0 {
			prev := pts[len(pts)-1]
			dist := math.Hypot(x-prev[0], y-prev[1])
			steps := int(math.Ceil(dist / maxGap))
			for s := 1; s < steps; s++ {
				f := float64(s) / float64(steps)
				pts = append(pts, []float64{round(prev[0] + (x-prev[0])*f), round(prev[1] + (y-prev[1])*f)})
			}
		}
		pts = append(pts, []float64{round(x), round(y)})
	}
	return model.StrokeDef{Name: name, Points: pts}
}

// arc returns flat coordinates of a circular arc from one angle to another
// in degrees, screen orientation (y down).
func arc(cx, cy, r, from, to float64, steps int) []float64 {
	return ellipse(cx, cy, r, r, from, to, steps)
}

func ellipse(cx, cy, rx, ry, from, to float64, steps int) []float64 {
	out := make([]float64, 0, (steps+1)*2)
	for i := 0; i <= steps; i++ {
		a := (from + (to-from)*float64(i)/float64(steps)) * math.Pi / 180
		out = append(out, cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	}
	return out
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}
