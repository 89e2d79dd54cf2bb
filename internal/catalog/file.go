// Package catalog provides exercise sets: the built-in alphabet, numbers and
// shapes, TOML set files, validation and conversion into tracer paths.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuitrace/internal/model"
)

// ErrInvalidSet is wrapped by every validation failure.
var ErrInvalidSet = errors.New("invalid exercise set")

// LoadFile reads and validates a TOML set file.
func LoadFile(path string) (model.SetDef, error) {
	var set model.SetDef
	if _, err := toml.DecodeFile(path, &set); err != nil {
		return model.SetDef{}, fmt.Errorf("failed to decode set file: %w", err)
	}
	if err := Validate(set); err != nil {
		return model.SetDef{}, err
	}
	return set, nil
}

// Decode parses and validates a set from TOML text.
func Decode(body string) (model.SetDef, error) {
	var set model.SetDef
	if _, err := toml.Decode(body, &set); err != nil {
		return model.SetDef{}, fmt.Errorf("failed to decode set: %w", err)
	}
	if err := Validate(set); err != nil {
		return model.SetDef{}, err
	}
	return set, nil
}

// Encode writes set as TOML.
func Encode(w io.Writer, set model.SetDef) error {
	if err := toml.NewEncoder(w).Encode(set); err != nil {
		return fmt.Errorf("failed to encode set: %w", err)
	}
	return nil
}

// EncodeString returns set as TOML text.
func EncodeString(set model.SetDef) (string, error) {
	var b strings.Builder
	if err := Encode(&b, set); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteFile writes set to path as TOML.
func WriteFile(path string, set model.SetDef) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create set file: %w", err)
	}
	if err := Encode(f, set); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close set file: %w", err)
	}
	return nil
}

// Validate checks that a set can be traced.
func Validate(set model.SetDef) error {
	if strings.TrimSpace(set.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidSet)
	}
	if len(set.Exercises) == 0 {
		return fmt.Errorf("%w: %s has no exercises", ErrInvalidSet, set.Name)
	}
	seen := map[string]struct{}{}
	for i, ex := range set.Exercises {
		if ex.Name == "" {
			return fmt.Errorf("%w: exercise %d has no name", ErrInvalidSet, i)
		}
		if _, dup := seen[ex.Name]; dup {
			return fmt.Errorf("%w: duplicate exercise %q", ErrInvalidSet, ex.Name)
		}
		seen[ex.Name] = struct{}{}
		if len(ex.Strokes) == 0 {
			return fmt.Errorf("%w: exercise %q has no strokes", ErrInvalidSet, ex.Name)
		}
		for j, st := range ex.Strokes {
			if err := validateStroke(st); err != nil {
				return fmt.Errorf("%w: exercise %q stroke %d: %v", ErrInvalidSet, ex.Name, j, err)
			}
		}
	}
	return nil
}

func validateStroke(st model.StrokeDef) error {
	if len(st.Points) == 0 {
		return fmt.Errorf("no checkpoints")
	}
	if err := validatePoints(st.Points); err != nil {
		return err
	}
	if st.Region == nil {
		return nil
	}
	r := st.Region
	switch r.Kind {
	case RegionRect:
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("rect region needs positive w and h")
		}
	case RegionCircle:
		if r.Radius <= 0 {
			return fmt.Errorf("circle region needs a positive radius")
		}
	case RegionPolygon:
		if len(r.Points) < 3 {
			return fmt.Errorf("polygon region needs at least 3 points")
		}
		return validatePoints(r.Points)
	case RegionCapsule:
		if r.Radius < 0 {
			return fmt.Errorf("capsule radius must be >= 0")
		}
		return validatePoints(r.Points)
	default:
		return fmt.Errorf("unknown region kind %q", r.Kind)
	}
	return nil
}

func validatePoints(points [][]float64) error {
	for i, p := range points {
		if len(p) != 2 {
			return fmt.Errorf("point %d must be [x, y]", i)
		}
	}
	return nil
}
