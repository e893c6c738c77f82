// Package history persists a record of past sweeps in a local SQLite
// database. History is strictly best-effort: a scan never fails because its
// history could not be written.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run is one completed sweep.
type Run struct {
	ID        string
	Root      string
	Ruleset   string
	Report    string
	Started   time.Time
	Completed time.Time
	Sections  []SectionResult

	// Matches is the total across all sections, denormalized for listing.
	Matches int
}

// SectionResult is the per-section outcome of a run.
type SectionResult struct {
	Section string
	Mode    string
	Matches int
}

// Store manages the SQLite history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun inserts a run and its section results in one transaction.
// A missing run ID is assigned a fresh UUID; the assigned ID is written
// back to run.
func (s *Store) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	total := 0
	for _, section := range run.Sections {
		total += section.Matches
	}
	run.Matches = total

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, root, ruleset, report, started_at, completed_at, sections, matches)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.Ruleset, run.Report,
		run.Started, run.Completed, len(run.Sections), run.Matches)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, section := range run.Sections {
		_, err = tx.Exec(`
			INSERT INTO section_results (run_id, section, mode, matches)
			VALUES (?, ?, ?, ?)
		`, run.ID, section.Section, section.Mode, section.Matches)
		if err != nil {
			return fmt.Errorf("insert section result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history transaction: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first, without their section
// details.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, root, ruleset, report, started_at, completed_at, matches
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Root, &run.Ruleset, &run.Report,
			&run.Started, &run.Completed, &run.Matches); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// SectionResults returns the per-section outcomes of one run, in insertion
// order.
func (s *Store) SectionResults(runID string) ([]SectionResult, error) {
	rows, err := s.db.Query(`
		SELECT section, mode, matches
		FROM section_results
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query section results: %w", err)
	}
	defer rows.Close()

	results := make([]SectionResult, 0)
	for rows.Next() {
		var sr SectionResult
		if err := rows.Scan(&sr.Section, &sr.Mode, &sr.Matches); err != nil {
			return nil, fmt.Errorf("scan section result: %w", err)
		}
		results = append(results, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate section results: %w", err)
	}

	return results, nil
}
