// Package snapshot renders exercises to PNG images.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/verte-zerg/tuitrace/internal/geom"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

// DefaultSize is the edge length in pixels of a rendered exercise.
const DefaultSize = 512

// Options controls rendering.
type Options struct {
	// Size is the edge length of the square image.
	Size int
	// Ink marks drawn on top of the regions.
	Ink []trace.InkMark
	// ShowDisabled draws disabled checkpoints as hollow rings.
	ShowDisabled bool
}

type rgb struct{ r, g, b float64 }

var (
	regionColor   = rgb{0.86, 0.89, 0.95}
	filledColor   = rgb{0.55, 0.80, 0.55}
	exerciseColor = rgb{0.98, 0.93, 0.60}
	inkColor      = rgb{0.20, 0.35, 0.85}
	enabledColor  = rgb{0.90, 0.30, 0.25}
	disabledColor = rgb{0.60, 0.60, 0.60}
)

// Render draws paths to w as PNG.
func Render(w io.Writer, paths []*trace.StrokePath, opts Options) error {
	dc := draw(paths, opts)
	defer func() {
		if cerr := dc.Close(); cerr != nil {
			// Best-effort release of drawing state.
			_ = cerr
		}
	}()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG renders paths into a PNG file, creating parent directories.
func SavePNG(path string, paths []*trace.StrokePath, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := Render(f, paths, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	return nil
}

func draw(paths []*trace.StrokePath, opts Options) *gg.Context {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	s := float64(size)
	dc := gg.NewContext(size, size)
	dc.ClearWithColor(gg.White)

	if len(paths) > 0 && paths[0] != nil && active(paths[0].ParentFill) {
		setColor(dc, exerciseColor)
		dc.DrawRectangle(0, 0, s, s)
		_ = dc.Fill()
	}

	for _, p := range paths {
		if p == nil || p.Region == nil {
			continue
		}
		c := regionColor
		if active(p.StrokeFill) {
			c = filledColor
		}
		setColor(dc, c)
		drawRegion(dc, p.Region, s)
	}

	setColor(dc, inkColor)
	for _, m := range opts.Ink {
		dc.DrawCircle(m.Pos.X*s, m.Pos.Y*s, s*0.012)
		_ = dc.Fill()
	}

	dc.SetLineWidth(2)
	for _, p := range paths {
		if p == nil {
			continue
		}
		for _, cp := range p.Checkpoints {
			switch {
			case cp.Enabled():
				setColor(dc, enabledColor)
				dc.DrawCircle(cp.Pos.X*s, cp.Pos.Y*s, cp.Radius*s)
				_ = dc.Fill()
			case opts.ShowDisabled:
				setColor(dc, disabledColor)
				dc.DrawCircle(cp.Pos.X*s, cp.Pos.Y*s, cp.Radius*s)
				_ = dc.Stroke()
			}
		}
	}
	return dc
}

func drawRegion(dc *gg.Context, r geom.Region, s float64) {
	switch reg := r.(type) {
	case geom.Rect:
		b := reg.Bounds()
		dc.DrawRectangle(b.Min.X*s, b.Min.Y*s, b.Width()*s, b.Height()*s)
		_ = dc.Fill()
	case geom.Circle:
		c := reg.Center.Mul(s)
		dc.DrawCircle(c.X, c.Y, reg.Radius*s)
		_ = dc.Fill()
	case geom.Polygon:
		if len(reg.Points) < 3 {
			return
		}
		polyline(dc, reg.Points, s)
		dc.ClosePath()
		_ = dc.Fill()
	case geom.Capsule:
		if len(reg.Points) == 0 {
			return
		}
		if len(reg.Points) == 1 {
			c := reg.Points[0].Mul(s)
			dc.DrawCircle(c.X, c.Y, reg.Radius*s)
			_ = dc.Fill()
			return
		}
		dc.SetLineWidth(2 * reg.Radius * s)
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
		polyline(dc, reg.Points, s)
		_ = dc.Stroke()
		dc.SetLineCap(gg.LineCapButt)
		dc.SetLineJoin(gg.LineJoinMiter)
	}
}

func polyline(dc *gg.Context, pts []geom.Point, s float64) {
	start := pts[0].Mul(s)
	dc.MoveTo(start.X, start.Y)
	for _, p := range pts[1:] {
		q := p.Mul(s)
		dc.LineTo(q.X, q.Y)
	}
}

func setColor(dc *gg.Context, c rgb) {
	dc.SetRGB(c.r, c.g, c.b)
}

func active(f trace.Fill) bool {
	return f != nil && f.Active()
}
