package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cnquotes/internal/collect"
	"cnquotes/internal/config"
	"cnquotes/internal/feed"
	"cnquotes/internal/store"
	"cnquotes/internal/universe"
	"cnquotes/internal/util"
)

func main() {
	cfgPath := "config/cnquotes.yaml"
	if p := os.Getenv("CNQUOTES_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Dual logger: stdout + dated /tmp log file.
	logger, logFile, logPath, err := util.NewDaemonLogger("/tmp", "cn-quotes", cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer logFile.Close()
	util.SetDefault(logger)

	// The universe is constructed exactly once and shared by handle. A
	// missing basic-info cache means no universe: fail fast.
	uni, err := universe.Load(cfg.Universe.CachePath)
	if err != nil {
		log.Fatalf("cannot build ticker universe (run cn-universe or provide %s): %v", cfg.Universe.CachePath, err)
	}

	runs, err := store.NewRunStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open run store: %v", err)
	}
	defer runs.Close()

	client := feed.NewClient(cfg.Feed.Endpoint, cfg.Feed.Timeout())
	cal := util.NewTradingCalendar(cfg.Collect.ExtraHolidays)

	producer := collect.NewProducer(uni, client, cal, runs, collect.ProducerConfig{
		BatchSize:          cfg.Feed.BatchSize,
		MaxWorkers:         cfg.Feed.MaxWorkers,
		RetryAttempts:      cfg.Feed.RetryAttempts,
		RetryDelay:         cfg.Feed.RetryDelay(),
		BufferWindowCycles: cfg.Collect.BufferWindowCycles,
		CyclePause:         cfg.Collect.CyclePause(),
		IdlePoll:           cfg.Collect.IdlePoll(),
	}, logger)

	sink := store.NewCSVStore(cfg.Storage.DataDir)
	pool := collect.NewWriterPool(sink, producer.Output(), cfg.Collect.ConsumerCount, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("starting cn-quotes collector",
		"logFile", logPath,
		"tickers", uni.Count(),
		"batchSize", cfg.Feed.BatchSize,
		"consumers", cfg.Collect.ConsumerCount,
	)

	pool.Start(ctx)
	producer.Run(ctx) // blocks until the shutdown signal
	pool.Wait()       // channel closed by the producer; drain and exit

	slog.Info("collector stopped")
}
