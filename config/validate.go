package config

import (
	"errors"
	"fmt"

	"github.com/ZaguanLabs/sitetrans"
)

// Validate checks that the configuration describes a runnable translation
// pass. Call it after CLI flag overrides have been merged in.
func (c *Config) Validate() error {
	if c.Site.SourceRoot == "" {
		return errors.New("site: source root is required")
	}
	if sitetrans.BaseLang(c.Site.SourceLang) == sitetrans.BaseLang(c.Site.TargetLang) {
		return fmt.Errorf("site: source and target languages are the same (%q)", c.Site.SourceLang)
	}

	switch c.Provider.Name {
	case "yandex":
		if c.Provider.YandexAPIKey == "" || c.Provider.YandexFolderID == "" {
			return errors.New("provider: YANDEX_API_KEY and YANDEX_FOLDER_ID are required")
		}
	case "openai":
		if c.Provider.OpenAIAPIKey == "" {
			return errors.New("provider: OPENAI_API_KEY is required")
		}
	case "mock":
		// Dry-run backend, no credentials.
	default:
		return fmt.Errorf("provider: unknown provider %q", c.Provider.Name)
	}

	if c.Translate.BatchSize <= 0 {
		return errors.New("translate: batch size must be positive")
	}
	if c.Translate.MaxChars <= 0 {
		return errors.New("translate: max chars must be positive")
	}
	if c.Translate.RequestsPerMinute <= 0 {
		return errors.New("translate: requests per minute must be positive")
	}
	if c.Translate.MaxRetries < 0 {
		return errors.New("translate: max retries must not be negative")
	}
	return nil
}
