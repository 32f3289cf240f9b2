package mysql

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	apperrors "bizledger/internal/errors"
)

var retryBackoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}

// RetryOnDeadlock re-runs fn when it fails because InnoDB aborted the whole
// transaction. Any other error is returned as is. With maxAttempts <= 1 fn
// runs exactly once and a deadlock surfaces as a DeadlockError.
func RetryOnDeadlock(ctx context.Context, logger *zap.Logger, maxAttempts int, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsDeadlock(err) {
			return err
		}
		if attempt == maxAttempts {
			logger.Warn("deadlock retries exhausted", zap.Int("attempts", attempt), zap.Error(err))
			break
		}

		base := retryBackoffs[min(attempt, len(retryBackoffs)-1)]
		// ±20% jitter
		wait := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
		logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Duration("backoff", wait))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return apperrors.NewDeadlockError("transaction aborted by a concurrent update, please retry")
}
