package sitetrans

import "unicode/utf8"

// BatchConfig bounds one translation request.
type BatchConfig struct {
	MaxTexts int // Maximum texts per batch (default: 80)
	MaxChars int // Maximum cumulative character count per batch (default: 9000)
}

// DefaultBatchConfig returns the default batch limits.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxTexts: 80,
		MaxChars: 9000,
	}
}

// Batches partitions texts into request batches, preserving order. Texts are
// added greedily while both the item limit and the cumulative character
// limit hold; a single text longer than the character limit still ships as a
// one-item batch. Characters are counted as runes.
func Batches(texts []string, cfg BatchConfig) [][]string {
	maxTexts := cfg.MaxTexts
	if maxTexts <= 0 {
		maxTexts = 80
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = 9000
	}

	var batches [][]string
	var current []string
	chars := 0

	for _, text := range texts {
		n := utf8.RuneCountInString(text)
		if len(current) > 0 && (len(current) >= maxTexts || chars+n > maxChars) {
			batches = append(batches, current)
			current = nil
			chars = 0
		}
		current = append(current, text)
		chars += n
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}
