// Package index maintains the automation artifact inventory backing
// gap analysis: which page object files, page object methods, step
// definition files, and step patterns exist in the automation codebase.
// The inventory lives in a SQLite database so one rebuild serves many
// tool invocations.
package index

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Artifact kinds stored in the inventory.
const (
	KindPageObjectFile     = "page_object_file"
	KindPageObjectMethod   = "page_object_method"
	KindStepDefinitionFile = "step_definition_file"
	KindStepPattern        = "step_pattern"
)

// Artifact is one inventory row.
type Artifact struct {
	Kind       string
	Name       string
	SourcePath string
}

// Store manages the SQLite artifact database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the artifact database at dbPath.
// Pass ":memory:" for an ephemeral store in tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks held by
	// a concurrent rebuild instead of failing immediately.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry retries a statement with exponential backoff on
// "database is locked" errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Has reports whether an artifact of the given kind and exact name is
// present in the inventory.
func (s *Store) Has(ctx context.Context, kind, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM artifacts WHERE kind = ? AND name = ?", kind, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query artifact %s/%s: %w", kind, name, err)
	}
	return count > 0, nil
}

// Insert adds one artifact, ignoring duplicates.
func (s *Store) Insert(ctx context.Context, a Artifact) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO artifacts (kind, name, source_path) VALUES (?, ?, ?)",
		a.Kind, a.Name, a.SourcePath)
	if err != nil {
		return fmt.Errorf("insert artifact %s/%s: %w", a.Kind, a.Name, err)
	}
	return nil
}

// Count returns the number of artifacts of the given kind, or all
// artifacts when kind is empty.
func (s *Store) Count(ctx context.Context, kind string) (int, error) {
	var count int
	var err error
	if kind == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artifacts").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artifacts WHERE kind = ?", kind).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count artifacts: %w", err)
	}
	return count, nil
}

// replaceAll swaps the whole inventory for the given artifacts in one
// transaction.
func (s *Store) replaceAll(ctx context.Context, artifacts []Artifact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM artifacts"); err != nil {
		return fmt.Errorf("clear artifacts: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO artifacts (kind, name, source_path) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range artifacts {
		if _, err := stmt.ExecContext(ctx, a.Kind, a.Name, a.SourcePath); err != nil {
			return fmt.Errorf("insert %s/%s: %w", a.Kind, a.Name, err)
		}
	}

	return tx.Commit()
}
