// Package store handles SQLite persistence of imported exercise sets.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tuitrace/internal/catalog"
	"github.com/verte-zerg/tuitrace/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a set is not in the library.
var ErrNotFound = errors.New("set not found")

// Store wraps SQLite access for the set library.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sets (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			exercises INTEGER NOT NULL,
			strokes INTEGER NOT NULL,
			body TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sets_category ON sets(category);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSet validates set and inserts or replaces it by name.
func (s *Store) SaveSet(ctx context.Context, set model.SetDef, importedAt time.Time) error {
	if err := catalog.Validate(set); err != nil {
		return err
	}
	body, err := catalog.EncodeString(set)
	if err != nil {
		return err
	}
	sum := catalog.Summarize(set, "library")
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sets (name, category, exercises, strokes, body, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			exercises = excluded.exercises,
			strokes = excluded.strokes,
			body = excluded.body,
			imported_at = excluded.imported_at`,
		sum.Name,
		sum.Category,
		sum.Exercises,
		sum.Strokes,
		body,
		importedAt.Format(time.RFC3339Nano),
	)
	return err
}

// GetSet loads a set by name.
func (s *Store) GetSet(ctx context.Context, name string) (model.SetDef, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM sets WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SetDef{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return model.SetDef{}, err
	}
	return catalog.Decode(body)
}

// ListSets returns summaries of every stored set ordered by name.
func (s *Store) ListSets(ctx context.Context) ([]model.SetSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, category, exercises, strokes, imported_at FROM sets ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SetSummary
	for rows.Next() {
		sum := model.SetSummary{Source: "library"}
		var importedAt string
		if err := rows.Scan(&sum.Name, &sum.Category, &sum.Exercises, &sum.Strokes, &importedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		sum.ImportedAt = parsed
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSet removes a set by name.
func (s *Store) DeleteSet(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sets WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}
