package config

import (
	"time"

	"health_tracker/internal/retry"
)

// ResilienceConfig groups the retry policies for each remote the service talks to.
type ResilienceConfig struct {
	SheetRead  retry.Config
	SheetWrite retry.Config
}

// DefaultResilienceConfig fails fast: one attempt, no deadline beyond the
// remote client's own defaults.
var DefaultResilienceConfig = ResilienceConfig{
	SheetRead:  retry.Config{},
	SheetWrite: retry.Config{},
}

// WithReadRetries returns a copy of c whose sheet reads retry up to n times
// with exponential backoff. Writes are left alone: the read-then-write update
// is not idempotent.
func (c ResilienceConfig) WithReadRetries(n int, retryable func(error) bool) ResilienceConfig {
	if n <= 0 {
		return c
	}
	c.SheetRead = retry.Config{
		MaxRetries: n,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    15 * time.Second,
		Retryable:  retryable,
	}
	return c
}
