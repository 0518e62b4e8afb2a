package config

import (
	"errors"
	"testing"
)

func TestDefaultResilienceConfigFailsFast(t *testing.T) {
	if DefaultResilienceConfig.SheetRead.MaxRetries != 0 {
		t.Errorf("Expected no read retries by default, got %d", DefaultResilienceConfig.SheetRead.MaxRetries)
	}
	if DefaultResilienceConfig.SheetWrite.MaxRetries != 0 {
		t.Errorf("Expected no write retries by default, got %d", DefaultResilienceConfig.SheetWrite.MaxRetries)
	}
	if DefaultResilienceConfig.SheetRead.Timeout != 0 {
		t.Errorf("Expected no read timeout by default, got %v", DefaultResilienceConfig.SheetRead.Timeout)
	}
}

func TestWithReadRetries(t *testing.T) {
	retryable := func(err error) bool { return !errors.Is(err, errors.ErrUnsupported) }

	cfg := DefaultResilienceConfig.WithReadRetries(3, retryable)
	if cfg.SheetRead.MaxRetries != 3 {
		t.Errorf("Expected 3 read retries, got %d", cfg.SheetRead.MaxRetries)
	}
	if cfg.SheetRead.Retryable == nil {
		t.Error("Expected retryable predicate to be kept")
	}
	if cfg.SheetWrite.MaxRetries != 0 {
		t.Errorf("Writes must never be retried, got %d", cfg.SheetWrite.MaxRetries)
	}
	if DefaultResilienceConfig.SheetRead.MaxRetries != 0 {
		t.Error("WithReadRetries must not mutate the default config")
	}

	unchanged := DefaultResilienceConfig.WithReadRetries(0, retryable)
	if unchanged.SheetRead.MaxRetries != 0 {
		t.Errorf("Expected zero retries to leave config untouched, got %d", unchanged.SheetRead.MaxRetries)
	}
}
