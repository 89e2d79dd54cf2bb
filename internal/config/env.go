// Package config provides environment overrides.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds TUITRACE_* overrides. They apply after the config file and
// before command-line flags.
type EnvConfig struct {
	Set              *string  `env:"TUITRACE_SET"`
	BrushSpacing     *float64 `env:"TUITRACE_BRUSH_SPACING"`
	CheckpointRadius *float64 `env:"TUITRACE_CHECKPOINT_RADIUS"`
	PopupDuration    *string  `env:"TUITRACE_POPUP_DURATION"`
	Music            *bool    `env:"TUITRACE_MUSIC"`
	Debug            *bool    `env:"TUITRACE_DEBUG"`
}

// LoadEnv reads overrides from the environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Overlay applies environment overrides on top of the file settings.
func (e EnvConfig) Overlay(p PlayConfig) PlayConfig {
	if e.Set != nil {
		p.Set = e.Set
	}
	if e.BrushSpacing != nil {
		p.BrushSpacing = e.BrushSpacing
	}
	if e.CheckpointRadius != nil {
		p.CheckpointRadius = e.CheckpointRadius
	}
	if e.PopupDuration != nil {
		p.PopupDuration = e.PopupDuration
	}
	if e.Music != nil {
		p.Music = e.Music
	}
	if e.Debug != nil {
		p.Debug = e.Debug
	}
	return p
}
