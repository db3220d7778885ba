// Package history records finished rfind searches in a SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// memoryPath selects a private in-memory database.
const memoryPath = ":memory:"

// Run is one recorded search
type Run struct {
	ID             string
	Sources        []string
	FilesFound     int
	DirsFound      int
	Errors         int
	InvalidSources int
	DurationMs     int64
	StartedAt      time.Time
}

// Store manages the SQLite history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the history database at dbPath.
// ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != memoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == memoryPath {
		// Every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the remaining pragmas wait on locks
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

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement, backing off on "database is locked".
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

// Path returns the database location.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts a run. An empty ID is replaced with a new UUID and a zero
// StartedAt with the current time; both are written back to run.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	sources := run.Sources
	if sources == nil {
		sources = []string{}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}

	query := `INSERT INTO search_runs
		(id, sources, files_found, dirs_found, errors, invalid_sources, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		run.ID,
		string(sourcesJSON),
		run.FilesFound,
		run.DirsFound,
		run.Errors,
		run.InvalidSources,
		run.DurationMs,
		run.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert search run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, most recent first. A limit <= 0 returns all runs.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, sources, files_found, dirs_found, errors, invalid_sources, duration_ms, started_at
		FROM search_runs
		ORDER BY started_at DESC, recorded_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query search runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var sourcesJSON string
		err := rows.Scan(
			&run.ID,
			&sourcesJSON,
			&run.FilesFound,
			&run.DirsFound,
			&run.Errors,
			&run.InvalidSources,
			&run.DurationMs,
			&run.StartedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan search run row: %w", err)
		}
		if err := json.Unmarshal([]byte(sourcesJSON), &run.Sources); err != nil {
			return nil, fmt.Errorf("unmarshal sources for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search runs: %w", err)
	}

	return runs, nil
}

// Count returns the number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count search runs: %w", err)
	}
	return n, nil
}
