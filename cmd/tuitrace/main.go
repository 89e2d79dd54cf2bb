// Package main provides the CLI entrypoint for tuitrace.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuitrace/internal/catalog"
	"github.com/verte-zerg/tuitrace/internal/config"
	"github.com/verte-zerg/tuitrace/internal/level"
	"github.com/verte-zerg/tuitrace/internal/logging"
	"github.com/verte-zerg/tuitrace/internal/menu"
	"github.com/verte-zerg/tuitrace/internal/model"
	"github.com/verte-zerg/tuitrace/internal/store"
	"github.com/verte-zerg/tuitrace/internal/trace"
	"github.com/verte-zerg/tuitrace/internal/tui"
)

const (
	defaultBrushSpacing     = trace.DefaultSpacing
	defaultCheckpointRadius = trace.DefaultCheckpointRadius
	defaultPopupDuration    = level.DefaultPopupDuration
)

var (
	playSet              string
	playExercise         string
	playBrushSpacing     float64
	playCheckpointRadius float64
	playPopupDuration    time.Duration
	playMusic            bool
	playDebug            bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuitrace",
		Short:         "TUI letter and shape tracing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playSet, "set", "", "set to play; empty opens the menu")
	rootCmd.Flags().StringVar(&playExercise, "exercise", "", "exercise to start from")
	rootCmd.Flags().Float64Var(&playBrushSpacing, "brush-spacing", defaultBrushSpacing, "minimum distance between ink marks (0-1)")
	rootCmd.Flags().Float64Var(&playCheckpointRadius, "checkpoint-radius", defaultCheckpointRadius, "checkpoint hit radius (0-0.5)")
	rootCmd.Flags().DurationVar(&playPopupDuration, "popup-duration", defaultPopupDuration, "how long popups stay on screen")
	rootCmd.Flags().BoolVar(&playMusic, "music", true, "start with music on")
	rootCmd.Flags().BoolVar(&playDebug, "debug", false, "write a debug log and enable snapshots (F2)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newRenderCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	if err := applyPlayConfig(cmd); err != nil {
		return err
	}
	cfg := model.Config{
		Set:              playSet,
		Exercise:         playExercise,
		BrushSpacing:     playBrushSpacing,
		CheckpointRadius: playCheckpointRadius,
		PopupDuration:    playPopupDuration,
		Music:            playMusic,
		Debug:            playDebug,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger := logging.Discard()
	if cfg.Debug {
		fileLogger, closer, err := logging.OpenFile(config.DefaultLogPath(), slog.LevelDebug)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				logErrf("failed to close log: %v\n", cerr)
			}
		}()
		logger = fileLogger
		trace.SetLogger(logger)
		level.SetLogger(logger)
		logErrf("Logging to %s\n", config.DefaultLogPath())
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	categories, err := menuCategories(ctx, st)
	if err != nil {
		return err
	}

	m := tui.NewModel(tui.Options{
		Config:     cfg,
		Categories: categories,
		Load: func(name string) (model.SetDef, error) {
			return resolveSet(ctx, st, name)
		},
		SnapshotDir: config.DefaultSnapshotDir(),
		Logger:      logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applyPlayConfig overlays the config file and TUITRACE_* variables onto
// flags the user did not set explicitly.
func applyPlayConfig(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	play := envCfg.Overlay(fileCfg.Play)

	applyStringConfig(cmd, "set", &playSet, play.Set)
	applyFloatConfig(cmd, "brush-spacing", &playBrushSpacing, play.BrushSpacing)
	applyFloatConfig(cmd, "checkpoint-radius", &playCheckpointRadius, play.CheckpointRadius)
	if err := applyDurationConfig(cmd, "popup-duration", &playPopupDuration, play.PopupDuration); err != nil {
		return err
	}
	applyBoolConfig(cmd, "music", &playMusic, play.Music)
	applyBoolConfig(cmd, "debug", &playDebug, play.Debug)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyDurationConfig accepts Go durations ("2s", "1500ms") or plain seconds.
func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := parseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", name, err)
	}
	*target = d
	return nil
}

func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	var secs float64
	if _, err := fmt.Sscanf(value, "%g", &secs); err != nil {
		return 0, fmt.Errorf("%q is not a duration", value)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuitrace configuration
# Uncomment a value to enable it. TUITRACE_* environment variables override
# these values and CLI flags override both.

[play]
# set = "alphabet"            # Set to play on start; empty opens the menu
# brush-spacing = %.2f        # Minimum distance between ink marks (0-1)
# checkpoint-radius = %.2f    # Checkpoint hit radius (0-0.5)
# popup-duration = %q         # How long popups stay on screen
# music = true                # Start with music on
# debug = false               # Write a debug log and enable snapshots (F2)
`,
		defaultBrushSpacing,
		defaultCheckpointRadius,
		defaultPopupDuration.String(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.BrushSpacing < 0 || cfg.BrushSpacing > 1 {
		return fmt.Errorf("--brush-spacing must be between 0 and 1")
	}
	if cfg.CheckpointRadius < 0 || cfg.CheckpointRadius > 0.5 {
		return fmt.Errorf("--checkpoint-radius must be between 0 and 0.5")
	}
	if cfg.PopupDuration < 0 {
		return fmt.Errorf("--popup-duration must be >= 0")
	}
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

// menuCategories lists the built-in sets followed by the library.
func menuCategories(ctx context.Context, st *store.Store) ([]menu.Category, error) {
	var cats []menu.Category
	for _, name := range catalog.BuiltinNames() {
		cats = append(cats, menu.Category{Name: name, Set: name})
	}
	sums, err := st.ListSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	for _, sum := range sums {
		cats = append(cats, menu.Category{Name: sum.Name, Set: sum.Name})
	}
	return cats, nil
}
