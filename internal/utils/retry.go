package utils

import (
	"fmt"
	"time"

	"bgp-notifier/internal/logging"
)

// Retry runs fn up to maxAttempts times with a fixed delay between
// attempts. Used by the Telegram announcer only; email delivery is
// deliberately single-attempt.
func Retry(logger *logging.Logger, maxAttempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err
			logger.Warnf("Attempt %d/%d failed: %v", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				time.Sleep(delay)
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
