package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// RunStore keeps per-day collection-run counters in SQLite: how many
// cycles ran, how many quotes were routed, and how many batches failed
// terminally. One row per calendar date.
type RunStore struct {
	db *sql.DB
}

const runSchema = `
CREATE TABLE IF NOT EXISTS collection_runs (
	date           TEXT PRIMARY KEY,
	cycles         INTEGER NOT NULL DEFAULT 0,
	quotes         INTEGER NOT NULL DEFAULT 0,
	failed_batches INTEGER NOT NULL DEFAULT 0,
	updated_at     TEXT NOT NULL
);`

// NewRunStore opens (or creates) the SQLite database at dbPath and ensures
// the schema exists.
func NewRunStore(dbPath string) (*RunStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", dbPath, err)
	}
	if _, err := db.Exec(runSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating collection_runs table: %w", err)
	}
	return &RunStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// RecordCycle adds one finished collection cycle to the given date's
// counters.
func (s *RunStore) RecordCycle(ctx context.Context, date string, quotes, failedBatches int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collection_runs (date, cycles, quotes, failed_batches, updated_at)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			cycles = cycles + 1,
			quotes = quotes + excluded.quotes,
			failed_batches = failed_batches + excluded.failed_batches,
			updated_at = excluded.updated_at`,
		date, quotes, failedBatches, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording cycle for %s: %w", date, err)
	}
	return nil
}

// RunSummary is one date's accumulated collection counters.
type RunSummary struct {
	Date          string
	Cycles        int64
	Quotes        int64
	FailedBatches int64
}

// Summary returns the counters for a date. A date with no recorded cycles
// returns a zero summary, not an error.
func (s *RunStore) Summary(ctx context.Context, date string) (RunSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT cycles, quotes, failed_batches
		FROM collection_runs WHERE date = ?`, date)

	summary := RunSummary{Date: date}
	err := row.Scan(&summary.Cycles, &summary.Quotes, &summary.FailedBatches)
	if err == sql.ErrNoRows {
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("reading summary for %s: %w", date, err)
	}
	return summary, nil
}
