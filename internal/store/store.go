// Package store persists collected quotes as per-ticker daily CSV files
// and keeps per-day collection-run statistics in SQLite.
package store

import (
	"context"

	"cnquotes/internal/domain"
)

// QuoteStore persists batches of real-time quotes.
type QuoteStore interface {
	// WriteQuotes appends a batch of quotes to their per-ticker daily
	// destinations. Exact duplicates within the batch are collapsed.
	WriteQuotes(ctx context.Context, quotes []domain.Quote) error
}
