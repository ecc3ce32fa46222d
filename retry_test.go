package sitetrans

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestWithRetry_SuccessFirstTry(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want ok", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithRetry_RetriesRateLimited(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), fastRetry(5), func() (string, error) {
		calls++
		if calls < 3 {
			return "", &ProviderError{Message: "throttled", RateLimited: true}
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected success after retries, got: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q", result)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetry_RetriesTransient(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetry(2), func() (string, error) {
		calls++
		return "", &ProviderError{Message: "connection reset", Retryable: true}
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (initial + 2 retries), got %d", calls)
	}
}

func TestWithRetry_FatalFailsImmediately(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetry(5), func() (string, error) {
		calls++
		return "", &ProviderError{Message: "unauthorized"}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("fatal error must not be retried, got %d calls", calls)
	}
}

func TestWithRetry_ReturnsLastError(t *testing.T) {
	_, err := WithRetry(context.Background(), fastRetry(1), func() (string, error) {
		return "", &ProviderError{Message: "still throttled", RateLimited: true}
	})

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if provErr.Message != "still throttled" {
		t.Errorf("unexpected message: %q", provErr.Message)
	}
}

func TestWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	cfg := RetryConfig{MaxRetries: 3, BaseDelay: time.Hour, MaxDelay: time.Hour}
	calls := 0
	_, err := WithRetry(ctx, cfg, func() (string, error) {
		calls++
		return "", &ProviderError{Message: "throttled", RateLimited: true}
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"transient provider error", &ProviderError{Retryable: true}, true},
		{"fatal provider error", &ProviderError{}, false},
		{"rate limited but not transient", &ProviderError{RateLimited: true}, false},
		{"wrapped transient", fmt.Errorf("translating: %w", &ProviderError{Retryable: true}), true},
		{"context cancelled", context.Canceled, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"rate limited", &ProviderError{RateLimited: true}, true},
		{"transient only", &ProviderError{Retryable: true}, false},
		{"wrapped rate limited", fmt.Errorf("translating: %w", &ProviderError{RateLimited: true}), true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimited(tt.err); got != tt.expected {
				t.Errorf("IsRateLimited() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", cfg.BaseDelay)
	}
	if cfg.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", cfg.MaxDelay)
	}
}

func TestRetryableProvider_WrapsTranslate(t *testing.T) {
	f := &fakeProvider{
		failFirst: 1,
		failWith:  &ProviderError{Message: "flaky", Retryable: true},
	}
	p := NewRetryableProvider(f, fastRetry(3))

	results, err := p.Translate(context.Background(), Request{Texts: []string{"текст"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0] != "«текст»" {
		t.Errorf("results[0] = %q", results[0])
	}
	if f.calls != 2 {
		t.Errorf("expected 2 calls, got %d", f.calls)
	}
}
