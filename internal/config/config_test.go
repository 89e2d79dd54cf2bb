package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.Play.Set != nil {
		t.Fatalf("expected empty config")
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigPlaySection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[play]\nset = \"shapes\"\nbrush-spacing = 0.05\npopup-duration = \"2s\"\nmusic = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Play.Set == nil || *cfg.Play.Set != "shapes" {
		t.Fatalf("unexpected set: %v", cfg.Play.Set)
	}
	if cfg.Play.BrushSpacing == nil || *cfg.Play.BrushSpacing != 0.05 {
		t.Fatalf("unexpected spacing: %v", cfg.Play.BrushSpacing)
	}
	if cfg.Play.Music == nil || *cfg.Play.Music {
		t.Fatalf("expected music=false")
	}
	if cfg.Play.Debug != nil {
		t.Fatalf("debug must stay unset")
	}
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("TUITRACE_SET", "numbers")
	t.Setenv("TUITRACE_BRUSH_SPACING", "0.2")
	t.Setenv("TUITRACE_DEBUG", "true")

	envCfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	fileSet := "shapes"
	music := false
	merged := envCfg.Overlay(PlayConfig{Set: &fileSet, Music: &music})
	if *merged.Set != "numbers" {
		t.Fatalf("expected env to override set, got %s", *merged.Set)
	}
	if *merged.BrushSpacing != 0.2 || !*merged.Debug {
		t.Fatalf("unexpected merged config: %+v", merged)
	}
	if *merged.Music {
		t.Fatalf("file value must survive when env is unset")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuitrace", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tuitrace", "library.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "tuitrace", "tuitrace.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
}
