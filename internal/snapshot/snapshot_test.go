package snapshot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/tuitrace/internal/catalog"
	"github.com/verte-zerg/tuitrace/internal/geom"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

func TestRenderProducesSizedPNG(t *testing.T) {
	set, _ := catalog.Builtin(catalog.SetShapes)
	paths := catalog.Build(set.Exercises[1], catalog.BuildOptions{})
	trace.New(paths, trace.Options{})

	var buf bytes.Buffer
	err := Render(&buf, paths, Options{
		Size:         64,
		Ink:          []trace.InkMark{{Pos: geom.Pt(0.5, 0.2)}},
		ShowDisabled: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("unexpected bounds: %v", b)
	}
}

func TestRenderDrawsEnabledCheckpoint(t *testing.T) {
	cp := trace.NewCheckpoint("c", geom.Pt(0.5, 0.5), 0.1)
	paths := []*trace.StrokePath{{
		Checkpoints: []*trace.Checkpoint{cp},
		Region:      geom.Rect{X: 0, Y: 0, W: 0.2, H: 0.2},
	}}
	trace.New(paths, trace.Options{})

	var buf bytes.Buffer
	if err := Render(&buf, paths, Options{Size: 100}); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(50, 50).RGBA()
	if r <= g || r <= b {
		t.Fatalf("expected the checkpoint color at the center, got %d %d %d", r, g, b)
	}
	r, g, b, _ = img.At(95, 95).RGBA()
	if r != g || g != b {
		t.Fatalf("expected white background in the corner, got %d %d %d", r, g, b)
	}
}

func TestSavePNGCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snap.png")
	if err := SavePNG(path, nil, Options{Size: 16}); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty file, err=%v", err)
	}
}
