package collect

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"cnquotes/internal/feed"
	"cnquotes/internal/store"
	"cnquotes/internal/universe"
	"cnquotes/internal/util"
)

// ProducerConfig tunes one producer's fetch cycles.
type ProducerConfig struct {
	BatchSize          int           // tickers per feed request
	MaxWorkers         int           // concurrent batch fetches per cycle
	RetryAttempts      int           // attempts per batch before dropping it
	RetryDelay         time.Duration // fixed delay between attempts
	BufferWindowCycles int           // cycles accumulated before a flush
	CyclePause         time.Duration // pacing sleep between cycles
	IdlePoll           time.Duration // sleep outside trading hours
}

// Producer runs the collection loop: gate on trading hours, fetch the
// whole universe batch by batch with bounded parallelism, route parsed
// quotes into the buffer, and flush buffered groups to the hand-off
// channel every N cycles. It owns the channel and closes it on exit.
type Producer struct {
	uni    *universe.Universe
	client *feed.Client
	cal    *util.TradingCalendar
	buffer *Buffer
	runs   *store.RunStore // optional; nil disables run stats
	cfg    ProducerConfig
	out    chan Group
	log    *slog.Logger

	now func() time.Time // injectable clock for tests
}

// NewProducer assembles a producer over an already constructed universe,
// feed client, and calendar. runs may be nil.
func NewProducer(uni *universe.Universe, client *feed.Client, cal *util.TradingCalendar, runs *store.RunStore, cfg ProducerConfig, log *slog.Logger) *Producer {
	return &Producer{
		uni:    uni,
		client: client,
		cal:    cal,
		buffer: NewBuffer(),
		runs:   runs,
		cfg:    cfg,
		out:    make(chan Group, 64),
		log:    log.With("component", "producer"),
		now:    time.Now,
	}
}

// Output returns the hand-off channel consumed by the writer pool. It is
// closed when Run returns.
func (p *Producer) Output() <-chan Group { return p.out }

// Run executes the collection loop until ctx is cancelled. Transient batch
// failures never stop the loop; only cancellation does. Buffered quotes
// not yet flushed at shutdown are discarded; the next start begins clean.
func (p *Producer) Run(ctx context.Context) {
	defer close(p.out)

	cycle := 0
	for {
		if ctx.Err() != nil {
			p.log.Info("collection loop stopped")
			return
		}

		now := p.now()
		if !p.cal.IsTradingMoment(now) {
			p.log.Info("not trading hours, idling", "now", now.Format("2006-01-02 15:04:05"))
			if !sleepCtx(ctx, p.cfg.IdlePoll) {
				return
			}
			continue
		}

		routed, failed := p.runCycle(ctx)
		cycle++

		if p.runs != nil {
			date := now.Format("2006-01-02")
			if err := p.runs.RecordCycle(ctx, date, routed, failed); err != nil {
				p.log.Warn("recording run stats failed", "err", err)
			}
		}

		if cycle%p.cfg.BufferWindowCycles == 0 {
			if !p.flush(ctx) {
				return
			}
		}

		if !sleepCtx(ctx, p.cfg.CyclePause) {
			return
		}
	}
}

// runCycle fetches every batch of the universe once. Batches run
// concurrently, at most MaxWorkers in flight; the cycle ends only when all
// batches finished or failed terminally. Returns the number of quotes
// routed to the buffer and the number of batches dropped after exhausting
// their retries.
func (p *Producer) runCycle(ctx context.Context) (routed, failed int) {
	defer util.Timed(p.log, "fetch cycle")()

	batches := p.uni.Batches(p.cfg.BatchSize)

	var routedN, failedN atomic.Int64
	g := &errgroup.Group{}
	g.SetLimit(p.cfg.MaxWorkers)

	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			var body string
			err := util.Retry(ctx, p.cfg.RetryAttempts, p.cfg.RetryDelay, func() error {
				text, err := p.client.Fetch(ctx, batch)
				if err != nil {
					return err
				}
				body = text
				return nil
			})
			if err != nil {
				failedN.Add(1)
				p.log.Warn("batch dropped after retries",
					"batch", i+1,
					"batches", len(batches),
					"tickers", len(batch),
					"err", err,
				)
				return nil
			}

			quotes, badLines := feed.ParseResponse(body)
			if badLines > 0 {
				p.log.Warn("unparseable lines in batch", "batch", i+1, "lines", badLines)
			}
			p.buffer.RecordAll(quotes)
			routedN.Add(int64(len(quotes)))
			return nil
		})
	}
	g.Wait()

	routed, failed = int(routedN.Load()), int(failedN.Load())
	p.log.Info("cycle done",
		"batches", len(batches),
		"failed", failed,
		"quotes", routed,
		"buffered", p.buffer.Len(),
	)
	return routed, failed
}

// flush drains the buffer and hands every ticker's group to the output
// channel. Returns false if cancelled mid-flush.
func (p *Producer) flush(ctx context.Context) bool {
	drained := p.buffer.FlushAll()
	for ticker, quotes := range drained {
		select {
		case p.out <- Group{Ticker: ticker, Quotes: quotes}:
		case <-ctx.Done():
			return false
		}
	}
	if len(drained) > 0 {
		p.log.Info("buffer flushed", "tickers", len(drained))
	}
	return true
}

// sleepCtx sleeps for d or until ctx is cancelled. Returns false when
// cancelled.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
