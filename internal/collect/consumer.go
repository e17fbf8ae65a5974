package collect

import (
	"context"
	"log/slog"
	"sync"

	"cnquotes/internal/store"
)

// WriterPool drains flushed quote groups from the hand-off channel into
// the persistence sink. Multiple consumers compete for groups, so two
// groups for the same ticker flushed close together may land out of
// submission order; the sink's append-only per-destination locking keeps
// that harmless.
type WriterPool struct {
	sink  store.QuoteStore
	in    <-chan Group
	count int
	log   *slog.Logger
	wg    sync.WaitGroup
}

// NewWriterPool creates a pool of count consumers over the given channel.
func NewWriterPool(sink store.QuoteStore, in <-chan Group, count int, log *slog.Logger) *WriterPool {
	return &WriterPool{
		sink:  sink,
		in:    in,
		count: count,
		log:   log.With("component", "writer"),
	}
}

// Start launches the consumers. Each one blocks on the channel and writes
// received groups; a write failure is logged and the consumer moves on to
// its next group. Consumers exit when the channel is closed and drained.
func (p *WriterPool) Start(ctx context.Context) {
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for group := range p.in {
				if err := p.sink.WriteQuotes(ctx, group.Quotes); err != nil {
					p.log.Error("writing quote group failed",
						"ticker", group.Ticker,
						"quotes", len(group.Quotes),
						"err", err,
					)
				}
			}
		}()
	}
}

// Wait blocks until every consumer has exited.
func (p *WriterPool) Wait() {
	p.wg.Wait()
}
