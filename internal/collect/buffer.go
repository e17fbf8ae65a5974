// Package collect ties the pipeline together: a producer loop that fans
// batch fetches out to a bounded worker group, a buffer that accumulates
// parsed quotes per ticker across cycles, and a writer pool that drains
// flushed groups into the persistence sink.
package collect

import (
	"sync"

	"cnquotes/internal/domain"
)

// Group is the hand-off unit between producer and writer pool: one
// ticker's accumulated quotes for the closing buffer window.
type Group struct {
	Ticker string
	Quotes []domain.Quote
}

// Buffer accumulates parsed quotes keyed by ticker between flushes. Record
// and FlushAll hold the same lock, so a flush racing a record either
// includes the record or leaves it for the next window; it never drops it.
type Buffer struct {
	mu     sync.Mutex
	quotes map[string][]domain.Quote
}

// NewBuffer creates an empty quote buffer.
func NewBuffer() *Buffer {
	return &Buffer{quotes: make(map[string][]domain.Quote)}
}

// Record appends a quote to its ticker's sequence, creating the sequence
// on first sight.
func (b *Buffer) Record(q domain.Quote) {
	b.mu.Lock()
	b.quotes[q.Ticker] = append(b.quotes[q.Ticker], q)
	b.mu.Unlock()
}

// RecordAll appends a batch of quotes under a single lock acquisition,
// preserving their order.
func (b *Buffer) RecordAll(quotes []domain.Quote) {
	b.mu.Lock()
	for _, q := range quotes {
		b.quotes[q.Ticker] = append(b.quotes[q.Ticker], q)
	}
	b.mu.Unlock()
}

// FlushAll atomically drains the whole buffer, handing ownership of every
// ticker's sequence to the caller and leaving the buffer empty.
func (b *Buffer) FlushAll() map[string][]domain.Quote {
	b.mu.Lock()
	drained := b.quotes
	b.quotes = make(map[string][]domain.Quote)
	b.mu.Unlock()
	return drained
}

// Len returns the number of buffered quotes across all tickers.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, qs := range b.quotes {
		n += len(qs)
	}
	return n
}
