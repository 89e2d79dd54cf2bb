// Package model defines shared data structures.
package model

import "time"

// Config defines play settings.
type Config struct {
	Set              string
	Exercise         string
	BrushSpacing     float64
	CheckpointRadius float64
	PopupDuration    time.Duration
	Music            bool
	Debug            bool
}

// SetDef is an authored exercise set, as stored in TOML set files.
type SetDef struct {
	Name      string        `toml:"name"`
	Category  string        `toml:"category"`
	Exercises []ExerciseDef `toml:"exercise"`
}

// ExerciseDef is one letter, digit or shape.
type ExerciseDef struct {
	Name    string      `toml:"name"`
	Strokes []StrokeDef `toml:"stroke"`
}

// StrokeDef is one stroke: checkpoints in trace order and an optional
// drawing region. Points are [x, y] pairs in the unit square, y down.
type StrokeDef struct {
	Name   string      `toml:"name"`
	Points [][]float64 `toml:"points"`
	Region *RegionDef  `toml:"region,omitempty"`
}

// RegionDef describes a drawing region. Kind is one of rect, circle,
// polygon or capsule. A capsule without points follows the stroke.
type RegionDef struct {
	Kind   string      `toml:"kind"`
	X      float64     `toml:"x,omitempty"`
	Y      float64     `toml:"y,omitempty"`
	W      float64     `toml:"w,omitempty"`
	H      float64     `toml:"h,omitempty"`
	Radius float64     `toml:"radius,omitempty"`
	Points [][]float64 `toml:"points,omitempty"`
}

// SetSummary describes a set for listings.
type SetSummary struct {
	Name       string
	Category   string
	Exercises  int
	Strokes    int
	Source     string
	ImportedAt time.Time
}
