package provider

import (
	"context"
	"fmt"
)

// MockProvider is a canned translation backend for tests and dry runs.
type MockProvider struct {
	Translations map[string]string    // Map of source text to translation
	Transform    func(string) string  // Applied to texts with no mapped translation
	CallCount    int                  // Number of times Translate was called
	Requests     [][]string           // Text batches received, in order
	LastRequest  *Request             // Last request received
	Err          error                // When set, returned by every call
}

// NewMockProvider creates a new mock provider. Texts without an explicit
// translation come back wrapped in brackets so they are easy to spot in
// output.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{},
	}
}

// Translate returns canned translations.
func (m *MockProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req
	m.Requests = append(m.Requests, append([]string(nil), req.Texts...))

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else if m.Transform != nil {
			results[i] = m.Transform(text)
		} else {
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}

	return results, nil
}

// Reset clears the call history.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
	m.Requests = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
