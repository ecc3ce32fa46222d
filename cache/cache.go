// Package cache provides translation cache backends.
//
// Keys are the literal source texts of the pipeline (after pre-translation
// glossary rewriting), values the final translations. The pipeline is
// unidirectional, so no language pair enters the key.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if
	// not found.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}

// Persister is implemented by caches whose contents are written to durable
// storage at the end of a run.
type Persister interface {
	Persist() error
}
