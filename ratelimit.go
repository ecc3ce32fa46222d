package sitetrans

import (
	"context"
	"sync"
	"time"
)

// DefaultRequestsPerWindow matches the per-minute request quota of the
// hosted translation APIs this package ships providers for.
const DefaultRequestsPerWindow = 300

// RateLimiter enforces a request budget over a fixed window. Once the budget
// is spent, callers block until the window expires; the counter then resets
// and the next window begins. Fixed windows are how the hosted translation
// services meter their quotas, so a run that respects the limiter does not
// see 429s in steady state.
type RateLimiter struct {
	mu      sync.Mutex
	budget  int
	window  time.Duration
	started time.Time // zero until the first acquire
	used    int
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerWindow int           // Budget per window (default: 300)
	Window            time.Duration // Window length (default: one minute)
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	r := &RateLimiter{budget: cfg.RequestsPerWindow, window: cfg.Window}
	if r.budget <= 0 {
		r.budget = DefaultRequestsPerWindow
	}
	if r.window <= 0 {
		r.window = time.Minute
	}
	return r
}

// acquire consumes a slot if one is free. When the budget is spent it
// reports how long until the window rolls over.
func (r *RateLimiter) acquire() (ok bool, retryIn time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.started.IsZero() || now.Sub(r.started) >= r.window {
		r.started = now
		r.used = 0
	}
	if r.used < r.budget {
		r.used++
		return true, 0
	}
	return false, r.window - now.Sub(r.started)
}

// TryAcquire consumes a request slot without blocking, reporting whether
// one was free.
func (r *RateLimiter) TryAcquire() bool {
	ok, _ := r.acquire()
	return ok
}

// Wait blocks until a request slot is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		ok, retryIn := r.acquire()
		if ok {
			return nil
		}
		if err := sleep(ctx, retryIn); err != nil {
			return err
		}
	}
}

// Available returns the number of request slots left in the current window.
func (r *RateLimiter) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started.IsZero() && time.Since(r.started) >= r.window {
		return r.budget
	}
	return r.budget - r.used
}

// RateLimitedProvider decorates a Provider with the request budget.
type RateLimitedProvider struct {
	inner   Provider
	limiter *RateLimiter
}

// NewRateLimitedProvider creates a new rate-limited provider.
func NewRateLimitedProvider(p Provider, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{inner: p, limiter: NewRateLimiter(cfg)}
}

// Translate implements Provider, blocking for a request slot before the
// wrapped provider is called. A wait cut short by ctx is not retryable.
func (p *RateLimitedProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Message: "rate limit wait cancelled", Cause: err}
	}
	return p.inner.Translate(ctx, req)
}

// Limiter returns the underlying rate limiter for inspection.
func (p *RateLimitedProvider) Limiter() *RateLimiter {
	return p.limiter
}
