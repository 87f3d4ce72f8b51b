// Package history keeps a SQLite journal of finished typing runs.
//
// The journal is informational only; the in-app high score always starts at
// zero for each process.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver registration

	"github.com/lixenwraith/vanish/timer"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("history store closed")

// Run is one journal row
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Seconds   int
	Reason    string
	NewRecord bool
}

// Store is a SQLite-backed run journal
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens or creates the journal at path, creating parent directories
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			started_at  INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			seconds     INTEGER NOT NULL,
			reason      TEXT NOT NULL,
			new_record  INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seconds ON runs(seconds);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`)
	return err
}

// Record appends a finished run and returns its journal row
func (s *Store) Record(r timer.RunResult) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return Run{}, ErrClosed
	}

	run := Run{
		ID:        uuid.NewString(),
		StartedAt: r.Start,
		Duration:  r.Duration,
		Seconds:   r.Seconds,
		Reason:    r.Reason.String(),
		NewRecord: r.NewRecord,
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, started_at, duration_ms, seconds, reason, new_record) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Seconds, run.Reason, boolToInt(run.NewRecord),
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

// Best returns up to limit runs ordered by longest first, earliest wins ties
func (s *Store) Best(limit int) ([]Run, error) {
	return s.query(`SELECT id, started_at, duration_ms, seconds, reason, new_record FROM runs
		ORDER BY duration_ms DESC, started_at ASC LIMIT ?`, limit)
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(limit int) ([]Run, error) {
	return s.query(`SELECT id, started_at, duration_ms, seconds, reason, new_record FROM runs
		ORDER BY started_at DESC LIMIT ?`, limit)
}

// Count returns the number of journaled runs
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, ErrClosed
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

// Close closes the database
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) query(q string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedMs  int64
			durationMs int64
			record     int
		)
		if err := rows.Scan(&r.ID, &startedMs, &durationMs, &r.Seconds, &r.Reason, &record); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMs)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.NewRecord = record != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
