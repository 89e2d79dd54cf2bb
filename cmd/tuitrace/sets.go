// Package main provides the CLI entrypoint for tuitrace.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuitrace/internal/catalog"
	"github.com/verte-zerg/tuitrace/internal/config"
	"github.com/verte-zerg/tuitrace/internal/model"
	"github.com/verte-zerg/tuitrace/internal/snapshot"
	"github.com/verte-zerg/tuitrace/internal/store"
	"github.com/verte-zerg/tuitrace/internal/tabular"
	"github.com/verte-zerg/tuitrace/internal/trace"
)

var (
	importName  string
	importForce bool

	renderOut  string
	renderSize int
)

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List built-in and imported exercise sets",
		Args:  cobra.NoArgs,
		RunE:  runSetsCmd,
	}
}

func runSetsCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return withStore(func(st *store.Store) error {
		sums, err := listSets(ctx, st)
		if err != nil {
			return err
		}
		return writeLines(cmd.OutOrStdout(), setsTable(sums).Lines(terminalWidth()))
	})
}

func listSets(ctx context.Context, st *store.Store) ([]model.SetSummary, error) {
	var sums []model.SetSummary
	for _, name := range catalog.BuiltinNames() {
		set, _ := catalog.Builtin(name)
		sums = append(sums, catalog.Summarize(set, "builtin"))
	}
	lib, err := st.ListSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	return append(sums, lib...), nil
}

func setsTable(sums []model.SetSummary) tabular.Table {
	rows := make([][]string, 0, len(sums))
	for _, sum := range sums {
		imported := ""
		if !sum.ImportedAt.IsZero() {
			imported = sum.ImportedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			sum.Name,
			sum.Category,
			strconv.Itoa(sum.Exercises),
			strconv.Itoa(sum.Strokes),
			sum.Source,
			imported,
		})
	}
	return tabular.Table{
		Headers: []string{"Name", "Category", "Exercises", "Strokes", "Source", "Imported"},
		Rows:    rows,
		Right:   map[int]bool{2: true, 3: true},
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a TOML exercise set into the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importName, "name", "", "store the set under this name")
	cmd.Flags().BoolVar(&importForce, "force", false, "replace an existing set with the same name")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	set, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(importName); name != "" {
		set.Name = name
	}
	if _, ok := catalog.Builtin(set.Name); ok {
		return fmt.Errorf("set %q is built in; import it with --name", set.Name)
	}
	return withStore(func(st *store.Store) error {
		ctx := context.Background()
		if !importForce {
			if _, err := st.GetSet(ctx, set.Name); err == nil {
				return fmt.Errorf("set already exists: %s (use --force to replace)", set.Name)
			} else if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("failed to check set: %w", err)
			}
		}
		if err := st.SaveSet(ctx, set, time.Now()); err != nil {
			return fmt.Errorf("failed to import set: %w", err)
		}
		sum := catalog.Summarize(set, "library")
		logErrf("Imported %s (%d exercises, %d strokes)\n", sum.Name, sum.Exercises, sum.Strokes)
		return nil
	})
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <set> <file>",
		Short: "Write a set to a TOML file",
		Args:  cobra.ExactArgs(2),
		RunE:  runExportCmd,
	}
}

func runExportCmd(_ *cobra.Command, args []string) error {
	return withStore(func(st *store.Store) error {
		set, err := resolveSet(context.Background(), st, args[0])
		if err != nil {
			return err
		}
		if err := catalog.WriteFile(args[1], set); err != nil {
			return err
		}
		logErrf("Wrote %s\n", args[1])
		return nil
	})
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <set>",
		Short: "Remove an imported set from the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
}

func runDeleteCmd(_ *cobra.Command, args []string) error {
	if _, ok := catalog.Builtin(args[0]); ok {
		return fmt.Errorf("set %q is built in and cannot be deleted", args[0])
	}
	return withStore(func(st *store.Store) error {
		if err := st.DeleteSet(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}
		logErrf("Deleted %s\n", args[0])
		return nil
	})
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <set> [exercise]",
		Short: "Render exercises to PNG images",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runRenderCmd,
	}
	cmd.Flags().StringVar(&renderOut, "out", ".", "output directory")
	cmd.Flags().IntVar(&renderSize, "size", snapshot.DefaultSize, "image size in pixels")
	return cmd
}

func runRenderCmd(_ *cobra.Command, args []string) error {
	if renderSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	return withStore(func(st *store.Store) error {
		set, err := resolveSet(context.Background(), st, args[0])
		if err != nil {
			return err
		}
		exercises := set.Exercises
		if len(args) == 2 {
			idx := catalog.Index(set, args[1])
			if idx < 0 {
				return fmt.Errorf("exercise %q not found in %s", args[1], set.Name)
			}
			exercises = exercises[idx : idx+1]
		}
		paths, err := renderExercises(set.Name, exercises, renderOut, renderSize)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logErrf("Wrote %s\n", p)
		}
		return nil
	})
}

// renderExercises draws each exercise in its starting state.
func renderExercises(setName string, exercises []model.ExerciseDef, dir string, size int) ([]string, error) {
	written := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		paths := catalog.Build(ex, catalog.BuildOptions{})
		trace.New(paths, trace.Options{})
		out := filepath.Join(dir, fileName(setName+"-"+ex.Name)+".png")
		if err := snapshot.SavePNG(out, paths, snapshot.Options{Size: size, ShowDisabled: true}); err != nil {
			return written, fmt.Errorf("failed to render %s: %w", ex.Name, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}
		return r
	}, name)
}

// resolveSet looks a set up among the built-ins, then in the library.
func resolveSet(ctx context.Context, st *store.Store, name string) (model.SetDef, error) {
	if set, ok := catalog.Builtin(name); ok {
		return set, nil
	}
	set, err := st.GetSet(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.SetDef{}, fmt.Errorf("unknown set %q (see: tuitrace sets)", name)
		}
		return model.SetDef{}, fmt.Errorf("failed to load set: %w", err)
	}
	return set, nil
}

func withStore(fn func(st *store.Store) error) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(st)
}
