// Package history persists check-run summaries to .guardrail/history.db so
// `guard report --history` can show enforcement results over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"guardrail/internal/config"
	"guardrail/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	files       INTEGER NOT NULL,
	errors      INTEGER NOT NULL,
	warnings    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// Run is one recorded check run.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"` // check, hook, report, serve
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Files      int       `json:"files"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open creates or opens .guardrail/history.db under the project root.
func Open(root string) (*Store, error) {
	dir := filepath.Join(root, config.GuardrailDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("history: create %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one run. Re-recording the same run ID is an error.
// started_at is stored as unix nanoseconds so ORDER BY is chronological.
func (s *Store) Record(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, source, started_at, duration_ms, files, errors, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.StartedAt.UTC().UnixNano(),
		run.DurationMS, run.Files, run.Errors, run.Warnings,
	)
	if err != nil {
		return fmt.Errorf("history: record run %s: %w", run.ID, err)
	}
	logging.Get(logging.CategoryStore).Debug("recorded run %s (%s)", run.ID, run.Source)
	return nil
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, source, started_at, duration_ms, files, errors, warnings
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt int64
		if err := rows.Scan(&run.ID, &run.Source, &startedAt, &run.DurationMS,
			&run.Files, &run.Errors, &run.Warnings); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		run.StartedAt = time.Unix(0, startedAt).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
