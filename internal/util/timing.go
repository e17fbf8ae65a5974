package util

import (
	"log/slog"
	"time"
)

// Timed returns a function that logs the elapsed time for an operation.
// Use at the call site:
//
//	defer util.Timed(log, "fetch cycle")()
func Timed(log *slog.Logger, op string) func() {
	start := time.Now()
	return func() {
		log.Info("operation finished",
			"op", op,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}
}
