package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/sitetrans"
)

// YandexEndpoint is the Yandex Cloud Translate v2 endpoint.
const YandexEndpoint = "https://translate.api.cloud.yandex.net/translate/v2/translate"

const yandexTimeout = 60 * time.Second

// YandexProvider implements Provider using the Yandex Cloud Translate API.
type YandexProvider struct {
	apiKey   string
	folderID string
	endpoint string
	client   *http.Client
}

// YandexConfig holds configuration for the Yandex provider.
type YandexConfig struct {
	APIKey     string       // Yandex Cloud API key
	FolderID   string       // Yandex Cloud folder the key is scoped to
	Endpoint   string       // Custom endpoint (optional, for testing)
	HTTPClient *http.Client // Custom HTTP client (optional)
}

// NewYandexProvider creates a new Yandex Cloud translation provider.
func NewYandexProvider(cfg YandexConfig) *YandexProvider {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = YandexEndpoint
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: yandexTimeout}
	}

	return &YandexProvider{
		apiKey:   cfg.APIKey,
		folderID: cfg.FolderID,
		endpoint: endpoint,
		client:   client,
	}
}

type yandexRequest struct {
	FolderID           string   `json:"folderId"`
	SourceLanguageCode string   `json:"sourceLanguageCode"`
	TargetLanguageCode string   `json:"targetLanguageCode"`
	Texts              []string `json:"texts"`
}

type yandexResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate translates a batch of texts through the Yandex Cloud API.
// A 429 status is reported as rate limited, server errors and transport
// failures as retryable, any other non-200 status as fatal.
func (p *YandexProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	body, err := json.Marshal(yandexRequest{
		FolderID:           p.folderID,
		SourceLanguageCode: sitetrans.BaseLang(req.SourceLang),
		TargetLanguageCode: sitetrans.BaseLang(req.TargetLang),
		Texts:              req.Texts,
	})
	if err != nil {
		return nil, &sitetrans.ProviderError{Message: "encoding request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &sitetrans.ProviderError{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("Authorization", "Api-Key "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", sitetrans.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &sitetrans.ProviderError{
			Message:   "Yandex API call failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &sitetrans.ProviderError{
			Message:     "429 Too Many Requests",
			RateLimited: true,
		}
	case resp.StatusCode >= 500:
		return nil, &sitetrans.ProviderError{
			Message:   fmt.Sprintf("Yandex API returned %s", resp.Status),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &sitetrans.ProviderError{
			Message: fmt.Sprintf("Yandex API returned %s: %s", resp.Status, bodySnippet(resp.Body)),
		}
	}

	var parsed yandexResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &sitetrans.ProviderError{Message: "decoding response", Cause: err}
	}

	out := make([]string, len(parsed.Translations))
	for i, tr := range parsed.Translations {
		out[i] = tr.Text
	}
	return out, nil
}

// bodySnippet reads a short error body for diagnostics.
func bodySnippet(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(data))
}

// Verify YandexProvider implements Provider
var _ Provider = (*YandexProvider)(nil)
