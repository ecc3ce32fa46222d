package sitetrans

import (
	"context"
	"errors"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Retry attempts after the first try
	BaseDelay  time.Duration // Delay before the first retry
	MaxDelay   time.Duration // Ceiling for the growing delay
}

// DefaultRetryConfig returns the default policy: six attempts in total, one
// second base delay doubling up to thirty seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 5,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry runs fn under the backoff policy in cfg. Rate-limit signals and
// transient transport failures are retried on an exponentially growing
// delay; any other error fails the call at once. When every attempt fails,
// the last error comes back, so callers see what the service actually said.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var zero T
	var lastErr error

	delay := cfg.BaseDelay
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		out, err := fn()
		if err == nil {
			return out, nil
		}
		if !IsRateLimited(err) && !IsRetryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == cfg.MaxRetries {
			break
		}
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}
	return zero, lastErr
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsRetryable reports whether an error is a transient failure worth another
// attempt. Only a ProviderError can make that claim; everything else,
// context cancellation included, is final.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}

// IsRateLimited reports whether an error carries the translation service's
// rate-limit signal. The retry layer backs off on these the same way it does
// for transient failures; callers may still want to log them apart.
func IsRateLimited(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.RateLimited
}

// RetryableProvider decorates a Provider with the backoff policy.
type RetryableProvider struct {
	inner Provider
	cfg   RetryConfig
}

// NewRetryableProvider creates a new provider with retry logic.
func NewRetryableProvider(p Provider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{inner: p, cfg: cfg}
}

// Translate implements Provider, retrying the wrapped provider on
// retryable failures.
func (p *RetryableProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	return WithRetry(ctx, p.cfg, func() ([]string, error) {
		return p.inner.Translate(ctx, req)
	})
}
