package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cnquotes/internal/domain"
)

// Compile-time interface check.
var _ QuoteStore = (*CSVStore)(nil)

// CSVStore appends quotes to one CSV file per ticker per calendar date:
//
//	<dataDir>/quotes/<ticker>/<date>.csv
//
// The header row is written only when a file is created. Files are only
// ever appended to, never rewritten. A per-destination lock serialises
// concurrent writers on the same file so partial lines never interleave.
type CSVStore struct {
	dataDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex // "<ticker>/<date>" → file lock
}

// NewCSVStore creates a CSVStore rooted at the given data directory.
func NewCSVStore(dataDir string) *CSVStore {
	return &CSVStore{
		dataDir: dataDir,
		locks:   make(map[string]*sync.Mutex),
	}
}

// destLock returns the lock for one (ticker, date) destination, creating
// it on first use.
func (s *CSVStore) destLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// WriteQuotes groups quotes by (ticker, date), collapses exact duplicates
// within the batch (quiet tickers repeat identical snapshots across
// polls), and appends the remaining rows to their destination files. A
// failing destination is reported but does not stop the others; the
// returned error joins all per-destination failures.
func (s *CSVStore) WriteQuotes(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	type dest struct{ ticker, date string }
	groups := make(map[dest][]domain.Quote)
	seen := make(map[domain.Quote]struct{}, len(quotes))
	for _, q := range quotes {
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		k := dest{q.Ticker, q.Date}
		groups[k] = append(groups[k], q)
	}

	var errs []error
	for k, group := range groups {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.appendTo(k.ticker, k.date, group); err != nil {
			errs = append(errs, fmt.Errorf("writing %s/%s: %w", k.ticker, k.date, err))
		}
	}
	return errors.Join(errs...)
}

// appendTo writes one destination's rows under its file lock.
func (s *CSVStore) appendTo(ticker, date string, quotes []domain.Quote) error {
	lock := s.destLock(ticker + "/" + date)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Join(s.dataDir, "quotes", ticker)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ticker dir: %w", err)
	}

	path := filepath.Join(dir, date+".csv")
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening quote file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(domain.QuoteHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, q := range quotes {
		if err := w.Write(q.Row()); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
