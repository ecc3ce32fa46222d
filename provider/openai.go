package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/sitetrans"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultTemperature = 0.3
)

// OpenAIProvider implements Provider on OpenAI's chat completion API. It is
// an alternative backend for language pairs the primary service does not
// cover well.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	p := &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
	if p.model == "" {
		p.model = defaultOpenAIModel
	}
	if p.temperature == 0 {
		p.temperature = defaultTemperature
	}
	return p
}

// Translate sends one batch through a chat completion and returns the
// translations in input order.
func (p *OpenAIProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	// A []string always marshals.
	payload, _ := json.Marshal(req.Texts)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &sitetrans.ProviderError{
			Message:   "OpenAI returned no choices",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Texts))
}

func (p *OpenAIProvider) buildSystemPrompt(req Request) string {
	sourceName := sitetrans.GetLanguageName(req.SourceLang)
	targetName := sitetrans.GetLanguageName(req.TargetLang)

	return fmt.Sprintf(`# Role
You are an expert native translator. You translate %s web content into idiomatic %s.

# Task
Translate each of the provided strings from %s to %s.

# Style Guide
- **Natural Flow**: Avoid literal translations. Rephrase sentences to sound natural to a native speaker.
- **Fidelity**: Preserve the meaning and register of the source text.
- **Markup Safety**: Do NOT translate HTML entities, URLs, email addresses or file names; keep them exactly as they appear.
- **Formatting**: Preserve punctuation style appropriate for %s.

# Format
Return a valid JSON object with a single key "translations" containing an array of strings in the exact same order as the input.
Example: { "translations": ["translated string 1", "translated string 2"] }
- Do NOT wrap the object in Markdown code blocks.`,
		sourceName, targetName, sourceName, targetName, targetName)
}

// parseResponse extracts the translated strings from the model's reply. The
// prompt pins {"translations": [...]}, but models drift: some answer with a
// bare array, some invent their own key. Accept any of those shapes as long
// as exactly one string per input comes back.
func (p *OpenAIProvider) parseResponse(content string, want int) ([]string, error) {
	texts, ok := decodeTranslationArray([]byte(content))
	if !ok {
		return nil, &sitetrans.ProviderError{
			Message: "OpenAI reply contains no translation array",
		}
	}
	if len(texts) != want {
		return nil, &sitetrans.CountMismatchError{Expected: want, Got: len(texts)}
	}
	return texts, nil
}

// decodeTranslationArray locates the array in a model reply: the reply is
// either the array itself or an object whose "translations" value holds it.
// If an object has neither, the first array-valued key wins.
func decodeTranslationArray(data []byte) ([]string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return coerceStrings(data)
	}
	if raw, ok := obj["translations"]; ok {
		if out, ok := coerceStrings(raw); ok {
			return out, true
		}
	}
	for _, raw := range obj {
		if out, ok := coerceStrings(raw); ok {
			return out, true
		}
	}
	return nil, false
}

// coerceStrings unmarshals a JSON array, stringifying any bare numbers or
// booleans a model slips in where a string belongs.
func coerceStrings(raw json.RawMessage) ([]string, bool) {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	out := make([]string, len(items))
	for i, item := range items {
		if s, ok := item.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(item)
		}
	}
	return out, true
}

// classifyOpenAIError maps API failures onto the rate-limited and retryable
// categories the retry layer acts on.
func classifyOpenAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusTooManyRequests:
		return &sitetrans.ProviderError{
			Message:     "OpenAI rate limit exceeded",
			Cause:       err,
			RateLimited: true,
		}
	case status >= 500:
		return &sitetrans.ProviderError{
			Message:   "OpenAI request failed",
			Cause:     err,
			Retryable: true,
		}
	case status != 0:
		return &sitetrans.ProviderError{
			Message: "OpenAI request rejected",
			Cause:   err,
		}
	}
	return &sitetrans.ProviderError{
		Message:   "OpenAI request failed",
		Cause:     err,
		Retryable: looksTransient(err),
	}
}

// transientFragments marks transport-level failures that arrive as plain
// errors with no status code attached.
var transientFragments = []string{
	"timeout",
	"timed out",
	"connection refused",
	"connection reset",
	"no such host",
	"temporar",
}

func looksTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, frag := range transientFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}

var _ Provider = (*OpenAIProvider)(nil)
