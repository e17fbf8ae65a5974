package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the cnquotes collector.
type Config struct {
	Universe UniverseConfig `yaml:"universe"`
	Feed     FeedConfig     `yaml:"feed"`
	Collect  CollectConfig  `yaml:"collect"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// UniverseConfig locates the basic-info cache used to build the ticker
// universe.
type UniverseConfig struct {
	CachePath string `yaml:"cache_path" env:"CNQUOTES_CACHE_PATH"`
}

// FeedConfig holds the quote feed endpoint and the batch fetch parameters.
type FeedConfig struct {
	Endpoint      string `yaml:"endpoint" env:"CNQUOTES_FEED_ENDPOINT"`
	BatchSize     int    `yaml:"batch_size"`
	MaxWorkers    int    `yaml:"max_workers"`
	TimeoutSecs   int    `yaml:"timeout_secs"`
	RetryAttempts int    `yaml:"retry_attempts"`
	RetryDelaySec int    `yaml:"retry_delay_secs"`
}

// Timeout returns the per-request HTTP timeout.
func (f FeedConfig) Timeout() time.Duration { return time.Duration(f.TimeoutSecs) * time.Second }

// RetryDelay returns the fixed delay between fetch attempts.
func (f FeedConfig) RetryDelay() time.Duration { return time.Duration(f.RetryDelaySec) * time.Second }

// CollectConfig tunes the producer loop and the writer pool.
type CollectConfig struct {
	BufferWindowCycles int      `yaml:"buffer_window_cycles"`
	CyclePauseSecs     int      `yaml:"cycle_pause_secs"`
	IdlePollSecs       int      `yaml:"idle_poll_secs"`
	ConsumerCount      int      `yaml:"consumer_count"`
	ExtraHolidays      []string `yaml:"extra_holidays"`
}

// CyclePause returns the pacing sleep between collection cycles.
func (c CollectConfig) CyclePause() time.Duration {
	return time.Duration(c.CyclePauseSecs) * time.Second
}

// IdlePoll returns the sleep interval outside trading hours.
func (c CollectConfig) IdlePoll() time.Duration {
	return time.Duration(c.IdlePollSecs) * time.Second
}

// StorageConfig holds paths for data persistence.
type StorageConfig struct {
	DataDir    string `yaml:"data_dir" env:"CNQUOTES_DATA_DIR"`
	SQLitePath string `yaml:"sqlite_path" env:"CNQUOTES_SQLITE_PATH"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// DefaultEndpoint is the public quote feed. One GET with a comma-joined
// ticker list returns one line per ticker.
const DefaultEndpoint = "https://hq.sinajs.cn/list="

// Load reads the YAML configuration file at the given path, parses it into
// a Config struct, applies environment variable overrides, and fills in
// defaults for unset values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-valued fields with working defaults.
func (c *Config) applyDefaults() {
	if c.Feed.Endpoint == "" {
		c.Feed.Endpoint = DefaultEndpoint
	}
	if c.Feed.BatchSize <= 0 {
		c.Feed.BatchSize = 200
	}
	if c.Feed.MaxWorkers <= 0 {
		c.Feed.MaxWorkers = 8
	}
	if c.Feed.TimeoutSecs <= 0 {
		c.Feed.TimeoutSecs = 3
	}
	if c.Feed.RetryAttempts <= 0 {
		c.Feed.RetryAttempts = 3
	}
	if c.Feed.RetryDelaySec <= 0 {
		c.Feed.RetryDelaySec = 1
	}
	if c.Collect.BufferWindowCycles <= 0 {
		c.Collect.BufferWindowCycles = 5
	}
	if c.Collect.CyclePauseSecs <= 0 {
		c.Collect.CyclePauseSecs = 1
	}
	if c.Collect.IdlePollSecs <= 0 {
		c.Collect.IdlePollSecs = 1
	}
	if c.Collect.ConsumerCount <= 0 {
		c.Collect.ConsumerCount = 4
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/cnquotes.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Universe.CachePath == "" {
		c.Universe.CachePath = "data/stock_basic.csv"
	}
}
