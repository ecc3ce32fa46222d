package sitetrans

import "context"

// Provider is the interface for translation service backends.
type Provider interface {
	Translate(ctx context.Context, req Request) ([]string, error)
}

// Request contains the parameters for one batch translation request.
type Request struct {
	Texts      []string
	SourceLang string
	TargetLang string
}

// ClientConfig configures a Client. Zero values fall back to the package
// defaults (80 texts / 9000 characters per batch, 300 requests per minute,
// six attempts with 1s..30s backoff).
type ClientConfig struct {
	SourceLang string
	TargetLang string
	Batch      BatchConfig
	RateLimit  RateLimitConfig
	Retry      RetryConfig
}

// Client issues batch requests against a translation service. It partitions
// texts into size-bounded batches, paces every outgoing request through the
// rate limiter and retries rate-limited or transiently failing requests with
// exponential backoff. Results come back in input order, one translation per
// input text.
type Client struct {
	provider   Provider
	limiter    *RateLimiter
	batch      BatchConfig
	sourceLang string
	targetLang string
}

// NewClient creates a Client around a Provider. The provider is wrapped with
// rate limiting and retry; callers pass the bare service implementation.
func NewClient(provider Provider, cfg ClientConfig) *Client {
	retry := cfg.Retry
	if retry.MaxRetries == 0 && retry.BaseDelay == 0 && retry.MaxDelay == 0 {
		retry = DefaultRetryConfig()
	}

	limited := NewRateLimitedProvider(provider, cfg.RateLimit)

	return &Client{
		provider:   NewRetryableProvider(limited, retry),
		limiter:    limited.Limiter(),
		batch:      cfg.Batch,
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
	}
}

// Translate translates texts in order. The result has exactly one element
// per input element; any failure that survives the retry policy aborts the
// whole call rather than returning a partial result.
func (c *Client) Translate(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([]string, 0, len(texts))

	for _, batch := range Batches(texts, c.batch) {
		out, err := c.provider.Translate(ctx, Request{
			Texts:      batch,
			SourceLang: c.sourceLang,
			TargetLang: c.targetLang,
		})
		if err != nil {
			return nil, err
		}
		if len(out) != len(batch) {
			return nil, &CountMismatchError{Expected: len(batch), Got: len(out)}
		}
		results = append(results, out...)
	}

	return results, nil
}

// Limiter returns the client's rate limiter for inspection.
func (c *Client) Limiter() *RateLimiter {
	return c.limiter
}

// SourceLang returns the source language code.
func (c *Client) SourceLang() string {
	return c.sourceLang
}

// TargetLang returns the target language code.
func (c *Client) TargetLang() string {
	return c.targetLang
}
