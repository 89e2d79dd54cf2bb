// Package geom provides points and hit regions in drawing space.
package geom

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
)

// Point is a position in drawing space.
type Point = gg.Point

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point {
	return gg.Pt(x, y)
}

// Region is a hit area in drawing space.
type Region interface {
	Contains(p Point) bool
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float64
}

// Bounds returns the rectangle as corner points.
func (r Rect) Bounds() gg.Rect {
	return gg.NewRect(gg.Pt(r.X, r.Y), gg.Pt(r.X+r.W, r.Y+r.H))
}

// Contains reports whether p lies inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return r.Bounds().Contains(p)
}

// Circle is a disc.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c Circle) Contains(p Point) bool {
	shape := scene.CircleShape{CX: float32(c.Center.X), CY: float32(c.Center.Y), R: float32(c.Radius)}
	return shape.Contains(float32(p.X), float32(p.Y))
}

// Polygon is a closed polygon filled with the non-zero winding rule.
type Polygon struct {
	Points []Point
	path   *scene.Path
}

// NewPolygon builds a polygon and its outline path once.
func NewPolygon(points []Point) Polygon {
	return Polygon{Points: points, path: polygonPath(points)}
}

// Contains reports whether p lies inside the polygon. Fewer than three
// vertices contain nothing.
func (pg Polygon) Contains(p Point) bool {
	if len(pg.Points) < 3 {
		return false
	}
	path := pg.path
	if path == nil {
		path = polygonPath(pg.Points)
	}
	return path.Contains(float32(p.X), float32(p.Y))
}

func polygonPath(points []Point) *scene.Path {
	coords := make([]float32, 0, len(points)*2)
	for _, p := range points {
		coords = append(coords, float32(p.X), float32(p.Y))
	}
	return scene.NewPolygonShape(coords...).ToPath()
}

// Capsule is a polyline thickened by Radius on every side. It is the usual
// shape of a stroke's drawing region.
type Capsule struct {
	Points []Point
	Radius float64
}

// Contains reports whether p lies within Radius of any segment.
func (c Capsule) Contains(p Point) bool {
	switch len(c.Points) {
	case 0:
		return false
	case 1:
		return p.Distance(c.Points[0]) <= c.Radius
	}
	for i := 1; i < len(c.Points); i++ {
		if SegmentDistance(p, c.Points[i-1], c.Points[i]) <= c.Radius {
			return true
		}
	}
	return false
}

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	den := ab.LengthSquared()
	if den == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / den
	t = math.Max(0, math.Min(1, t))
	return p.Distance(gg.NewLine(a, b).Eval(t))
}
