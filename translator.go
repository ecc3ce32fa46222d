package sitetrans

import "context"

// Translator orchestrates one document's translation pass: it deduplicates
// texts, consults the cache, sends the remaining misses to the translation
// client and applies glossary rules on both sides of the service call.
type Translator struct {
	client   BatchTranslator
	cache    TranslationCache
	glossary Glossary
}

// BatchTranslator is the interface the orchestrator calls for cache misses.
// *Client is the standard implementation.
type BatchTranslator interface {
	Translate(ctx context.Context, texts []string) ([]string, error)
}

// TranslationCache is the interface for translation caching. Keys are the
// literal source texts after pre-translation glossary rewriting.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Glossary rewrites text according to forced term mappings. Apply runs
// before translation (so the service sees canonical source text, and the
// rewritten text is what keys the cache) and again on the service's output
// (so a source term echoed untranslated is still forced to the target term).
type Glossary interface {
	Apply(text string) string
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithGlossary sets the glossary rule set.
func WithGlossary(glossary Glossary) TranslatorOption {
	return func(t *Translator) {
		t.glossary = glossary
	}
}

// NewTranslator creates a new Translator backed by the given client.
func NewTranslator(client BatchTranslator, opts ...TranslatorOption) *Translator {
	t := &Translator{
		client: client,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TranslateAll resolves every text to its final translation, preserving
// order and length. Duplicate texts are translated at most once per call;
// cached texts never reach the client. The returned Stats count the call's
// cache hits and fresh translations.
func (t *Translator) TranslateAll(ctx context.Context, texts []string) ([]string, Stats, error) {
	stats := Stats{Total: len(texts)}
	if len(texts) == 0 {
		return nil, stats, nil
	}

	// Rewrite each text through the pre-translation glossary; the rewritten
	// text is the unit of deduplication and the cache key.
	prepared := make([]string, len(texts))
	for i, text := range texts {
		prepared[i] = t.applyGlossary(text)
	}

	mapping := make(map[string]string)
	seen := make(map[string]bool)
	var misses []string

	for _, text := range prepared {
		if seen[text] {
			continue
		}
		seen[text] = true
		stats.Unique++

		if t.cache != nil {
			if cached, ok := t.cache.Get(text); ok {
				mapping[text] = cached
				stats.Cached++
				continue
			}
		}

		misses = append(misses, text)
	}

	if len(misses) > 0 {
		results, err := t.client.Translate(ctx, misses)
		if err != nil {
			return nil, stats, err
		}
		if len(results) != len(misses) {
			return nil, stats, &CountMismatchError{Expected: len(misses), Got: len(results)}
		}

		for i, source := range misses {
			final := t.applyGlossary(results[i])
			if t.cache != nil {
				_ = t.cache.Set(source, final) // Ignore cache set errors
			}
			mapping[source] = final
			stats.Translated++
		}
	}

	finals := make([]string, len(texts))
	for i := range prepared {
		if translated, ok := mapping[prepared[i]]; ok {
			finals[i] = translated
		} else {
			finals[i] = prepared[i]
		}
	}

	return finals, stats, nil
}

// TranslateUnits resolves the final text for every unit, in unit order.
func (t *Translator) TranslateUnits(ctx context.Context, units []Unit) ([]string, Stats, error) {
	texts := make([]string, len(units))
	for i, unit := range units {
		texts[i] = unit.Text
	}
	return t.TranslateAll(ctx, texts)
}

func (t *Translator) applyGlossary(text string) string {
	if t.glossary == nil {
		return text
	}
	return t.glossary.Apply(text)
}
