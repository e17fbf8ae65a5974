package util

import (
	"context"
	"time"
)

// Retry calls fn up to maxAttempts times with a fixed delay between
// attempts. It returns nil on the first successful call, or the last error
// if all attempts fail. The function respects context cancellation between
// retries; a cancelled context returns ctx.Err() without further attempts.
func Retry(ctx context.Context, maxAttempts int, delay time.Duration, fn func() error) error {
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		// Don't sleep after the last failed attempt.
		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return err
}
