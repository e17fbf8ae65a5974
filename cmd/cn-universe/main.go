// cn-universe validates the basic-info cache and prints universe
// statistics. The cache itself is produced by an external info provider;
// this tool only checks what the collector will see at startup.
package main

import (
	"fmt"
	"log"
	"os"

	"cnquotes/internal/config"
	"cnquotes/internal/universe"
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

	uni, err := universe.Load(cfg.Universe.CachePath)
	if err != nil {
		log.Fatalf("universe check failed: %v", err)
	}

	counts := uni.CountByExchange()
	fmt.Printf("basic-info cache: %s\n", cfg.Universe.CachePath)
	fmt.Printf("eligible tickers: %d (sh=%d sz=%d bj=%d)\n",
		uni.Count(), counts["sh"], counts["sz"], counts["bj"])
	fmt.Printf("batches of %d:    %d\n", cfg.Feed.BatchSize, len(uni.Batches(cfg.Feed.BatchSize)))
}
