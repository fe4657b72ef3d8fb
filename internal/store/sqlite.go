// Package store records summaries of finished simulation runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run is the summary of one simulation run.
type Run struct {
	ID        string
	Batch     string
	CreatedAt time.Time

	Width    int
	Height   int
	Seed     int64
	Strategy string

	Beta   float64
	Gamma  float64
	Dt     float64
	IRatio float64

	Steps        int
	PeakInfected int
	PeakStep     int
	Susceptible  int
	Infected     int
	Recovered    int
	Extinct      bool
	Elapsed      time.Duration
}

// AttackRate is the fraction of cells that were ever infected.
func (r Run) AttackRate() float64 {
	total := r.Susceptible + r.Infected + r.Recovered
	if total == 0 {
		return 0
	}
	return float64(r.Infected+r.Recovered) / float64(total)
}

// Store persists Run summaries.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures the
// schema exists. Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}
	return &Store{db: db}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			batch TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			strategy TEXT NOT NULL,
			beta REAL NOT NULL,
			gamma REAL NOT NULL,
			dt REAL NOT NULL,
			i_ratio REAL NOT NULL,
			steps INTEGER NOT NULL,
			peak_infected INTEGER NOT NULL,
			peak_step INTEGER NOT NULL,
			susceptible INTEGER NOT NULL,
			infected INTEGER NOT NULL,
			recovered INTEGER NOT NULL,
			extinct BOOLEAN NOT NULL,
			elapsed_ns INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch);`,
	}
	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// NewBatchID returns an identifier grouping the runs of one sweep.
func NewBatchID() string { return uuid.NewString() }

// Append inserts run, assigning an ID and timestamp when they are empty, and
// returns the stored value.
func (s *Store) Append(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO runs (id, batch, created_at, width, height, seed, strategy, beta, gamma, dt, i_ratio,
			steps, peak_infected, peak_step, susceptible, infected, recovered, extinct, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.Batch, run.CreatedAt, run.Width, run.Height, run.Seed, run.Strategy,
		run.Beta, run.Gamma, run.Dt, run.IRatio,
		run.Steps, run.PeakInfected, run.PeakStep, run.Susceptible, run.Infected, run.Recovered,
		run.Extinct, int64(run.Elapsed),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to append run: %w", err)
	}
	return run, nil
}

// ListBatch returns the runs of a batch in insertion order.
func (s *Store) ListBatch(ctx context.Context, batch string) ([]Run, error) {
	query := `SELECT id, batch, created_at, width, height, seed, strategy, beta, gamma, dt, i_ratio,
		steps, peak_infected, peak_step, susceptible, infected, recovered, extinct, elapsed_ns
		FROM runs WHERE batch = ? ORDER BY rowid ASC`
	rows, err := s.db.QueryContext(ctx, query, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsed int64
		err := rows.Scan(
			&r.ID, &r.Batch, &r.CreatedAt, &r.Width, &r.Height, &r.Seed, &r.Strategy,
			&r.Beta, &r.Gamma, &r.Dt, &r.IRatio,
			&r.Steps, &r.PeakInfected, &r.PeakStep, &r.Susceptible, &r.Infected, &r.Recovered,
			&r.Extinct, &elapsed,
		)
		if err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(elapsed)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
