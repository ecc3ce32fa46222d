package sitetrans

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func benchClient(f *fakeProvider) *Client {
	return NewClient(f, ClientConfig{
		RateLimit: RateLimitConfig{RequestsPerWindow: 1 << 30, Window: time.Minute},
		Retry:     fastRetry(0),
	})
}

func benchTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("Текст номер %d из тестового корпуса", i)
	}
	return texts
}

func BenchmarkBatches(b *testing.B) {
	texts := benchTexts(1000)
	cfg := DefaultBatchConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Batches(texts, cfg)
	}
}

func BenchmarkTranslateAll_ColdCache(b *testing.B) {
	texts := benchTexts(200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := NewTranslator(benchClient(&fakeProvider{}), WithCache(&mapCache{}))
		if _, _, err := tr.TranslateAll(context.Background(), texts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTranslateAll_WarmCache(b *testing.B) {
	texts := benchTexts(200)
	tr := NewTranslator(benchClient(&fakeProvider{}), WithCache(&mapCache{}))
	if _, _, err := tr.TranslateAll(context.Background(), texts); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := tr.TranslateAll(context.Background(), texts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDiffUnits(b *testing.B) {
	old := textUnits(benchTexts(500)...)
	updated := textUnits(benchTexts(510)...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DiffUnits(old, updated)
	}
}
