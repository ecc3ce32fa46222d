package sitetrans

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeProvider is a scriptable Provider for pipeline tests. Texts come back
// wrapped in guillemets unless a transform is set.
type fakeProvider struct {
	transform func(string) string
	failFirst int   // fail this many leading calls
	failWith  error // error returned for scripted failures
	dropLast  bool  // return one translation fewer than requested
	calls     int
	batches   [][]string
	lastReq   Request
}

func (f *fakeProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	f.calls++
	f.lastReq = req
	f.batches = append(f.batches, append([]string(nil), req.Texts...))

	if f.calls <= f.failFirst {
		return nil, f.failWith
	}

	out := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if f.transform != nil {
			out[i] = f.transform(text)
		} else {
			out[i] = "«" + text + "»"
		}
	}
	if f.dropLast && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

// fastRetry keeps test retries from sleeping for real.
func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestClient_TranslateInOrder(t *testing.T) {
	f := &fakeProvider{}
	c := NewClient(f, ClientConfig{SourceLang: "ru", TargetLang: "uz"})

	texts := []string{"один", "два", "три"}
	results, err := c.Translate(context.Background(), texts)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"«один»", "«два»", "«три»"}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %q, want %q", i, results[i], want[i])
		}
	}
	if f.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", f.calls)
	}
}

func TestClient_EmptyInput(t *testing.T) {
	f := &fakeProvider{}
	c := NewClient(f, ClientConfig{})

	results, err := c.Translate(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
	if f.calls != 0 {
		t.Errorf("expected no provider calls, got %d", f.calls)
	}
}

func TestClient_RequestCarriesLanguages(t *testing.T) {
	f := &fakeProvider{}
	c := NewClient(f, ClientConfig{SourceLang: "ru", TargetLang: "uz"})

	if _, err := c.Translate(context.Background(), []string{"текст"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.lastReq.SourceLang != "ru" || f.lastReq.TargetLang != "uz" {
		t.Errorf("request languages = %q -> %q, want ru -> uz",
			f.lastReq.SourceLang, f.lastReq.TargetLang)
	}
}

func TestClient_SplitsLargeInput(t *testing.T) {
	f := &fakeProvider{}
	c := NewClient(f, ClientConfig{
		Batch: BatchConfig{MaxTexts: 2, MaxChars: 9000},
	})

	texts := []string{"a", "b", "c", "d", "e"}
	results, err := c.Translate(context.Background(), texts)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(results))
	}
	if f.calls != 3 {
		t.Errorf("expected 3 provider calls, got %d", f.calls)
	}
	for i, text := range texts {
		if results[i] != "«"+text+"»" {
			t.Errorf("results[%d] = %q, out of order", i, results[i])
		}
	}
}

func TestClient_RetriesRateLimited(t *testing.T) {
	f := &fakeProvider{
		failFirst: 2,
		failWith:  &ProviderError{Message: "too many requests", RateLimited: true},
	}
	c := NewClient(f, ClientConfig{Retry: fastRetry(5)})

	results, err := c.Translate(context.Background(), []string{"текст"})
	if err != nil {
		t.Fatalf("expected success after retries, got: %v", err)
	}
	if results[0] != "«текст»" {
		t.Errorf("results[0] = %q", results[0])
	}
	if f.calls != 3 {
		t.Errorf("expected 3 calls (2 failures + success), got %d", f.calls)
	}
}

func TestClient_RetryExhausted(t *testing.T) {
	f := &fakeProvider{
		failFirst: 100,
		failWith:  &ProviderError{Message: "too many requests", RateLimited: true},
	}
	c := NewClient(f, ClientConfig{Retry: fastRetry(2)})

	_, err := c.Translate(context.Background(), []string{"текст"})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if f.calls != 3 {
		t.Errorf("expected 3 calls (initial + 2 retries), got %d", f.calls)
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Errorf("expected ProviderError, got %T", err)
	}
}

func TestClient_FatalErrorAborts(t *testing.T) {
	f := &fakeProvider{
		failFirst: 1,
		failWith:  &ProviderError{Message: "unauthorized"},
	}
	c := NewClient(f, ClientConfig{Retry: fastRetry(5)})

	_, err := c.Translate(context.Background(), []string{"текст"})
	if err == nil {
		t.Fatal("expected error")
	}
	if f.calls != 1 {
		t.Errorf("fatal error must not be retried, got %d calls", f.calls)
	}
}

func TestClient_CountMismatch(t *testing.T) {
	f := &fakeProvider{dropLast: true}
	c := NewClient(f, ClientConfig{})

	_, err := c.Translate(context.Background(), []string{"один", "два"})
	if err == nil {
		t.Fatal("expected count mismatch error")
	}

	var mismatch *CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CountMismatchError, got %T: %v", err, err)
	}
	if mismatch.Expected != 2 || mismatch.Got != 1 {
		t.Errorf("mismatch = %d/%d, want 2/1", mismatch.Expected, mismatch.Got)
	}
}

func TestClient_Accessors(t *testing.T) {
	c := NewClient(&fakeProvider{}, ClientConfig{SourceLang: "ru", TargetLang: "uz"})

	if c.SourceLang() != "ru" {
		t.Errorf("SourceLang() = %q", c.SourceLang())
	}
	if c.TargetLang() != "uz" {
		t.Errorf("TargetLang() = %q", c.TargetLang())
	}
	if c.Limiter() == nil {
		t.Error("Limiter() should not be nil")
	}
}
