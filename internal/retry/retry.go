package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Config controls WithRetry. The zero value runs the operation exactly once
// with no deadline beyond the caller's context.
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	// Timeout bounds each attempt. Zero leaves the attempt to the client's defaults.
	Timeout time.Duration
	// Retryable reports whether err is worth another attempt. Nil retries every error.
	Retryable func(error) bool
}

func WithRetry[T any](ctx context.Context, config Config, operation func(context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := runAttempt(ctx, config.Timeout, operation)
		if err == nil {
			return result, nil
		}

		if config.MaxRetries == 0 {
			return zero, err
		}

		log.Debug().
			Err(err).
			Int("attempt", attempt+1).
			Msg("Operation failed")

		if config.Retryable != nil && !config.Retryable(err) {
			return zero, err
		}

		if attempt < config.MaxRetries {
			delay := calculateBackoffDelay(attempt, config.BaseDelay, config.MaxDelay)
			log.Debug().
				Dur("delay", delay).
				Int("next_attempt", attempt+2).
				Msg("Retrying after delay")

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		return zero, fmt.Errorf("operation failed after %d attempts: %w", config.MaxRetries+1, err)
	}
	return zero, fmt.Errorf("unexpected: exceeded retry loop")
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, operation func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return operation(ctx)
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return operation(opCtx)
}

func calculateBackoffDelay(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	// Cap attempt at 30 to prevent overflow (2^30 is safe for int)
	safeAttempt := min(attempt, 30)
	multiplier := 1 << safeAttempt
	delay := time.Duration(multiplier) * baseDelay

	if delay > maxDelay {
		delay = maxDelay
	}

	// random between 0.5x and 1.5x
	jitter := 0.5 + rand.Float64()
	delay = time.Duration(float64(delay) * jitter)

	if delay > maxDelay {
		delay = maxDelay
	}

	return delay
}
