package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// WithBackoff calls fn up to maxAttempts times. Only errors accepted by
// retriable are retried; the delay doubles each attempt plus up to baseDelay
// of jitter.
func WithBackoff[T any](
	ctx context.Context,
	maxAttempts int,
	baseDelay time.Duration,
	retriable func(error) bool,
	fn func() (T, error),
) (T, error) {
	var zero T
	if maxAttempts <= 0 {
		return zero, fmt.Errorf("maxAttempts must be > 0, got %d", maxAttempts)
	}
	var lastErr error

	for i := range maxAttempts {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if retriable == nil || !retriable(err) {
			return zero, err
		}

		if i < maxAttempts-1 {
			delay := time.Duration(math.Pow(2, float64(i))) * baseDelay
			if baseDelay > 0 {
				delay += time.Duration(rand.Int63n(int64(baseDelay))) //nolint:gosec // jitter doesn't need crypto rand
			}
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	if maxAttempts == 1 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}
