package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileCache is an in-memory cache persisted as a flat JSON object mapping
// source text to translation. The file is human-inspectable: indented, with
// HTML escaping disabled so non-ASCII text stays literal.
//
// Load tolerates a missing or corrupt file by starting empty; a broken cache
// costs cache hits, it never aborts a run. Persist rewrites the whole
// mapping.
type FileCache struct {
	*InMemoryCache
	path string
}

// NewFileCache creates a file-backed cache at the given path. The file is
// not read until Load is called.
func NewFileCache(path string) *FileCache {
	return &FileCache{
		InMemoryCache: NewInMemoryCache(),
		path:          path,
	}
}

// Load reads the cache file, replacing the current contents. A missing,
// unreadable or corrupt file yields an empty cache. Returns the number of
// entries restored.
func (c *FileCache) Load() int {
	c.Clear()

	data, err := os.ReadFile(c.path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return 0
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0
	}

	for key, value := range entries {
		_ = c.InMemoryCache.Set(key, value)
	}
	return len(entries)
}

// Persist writes the full mapping to the cache file, creating parent
// directories as needed.
func (c *FileCache) Persist() error {
	if dir := filepath.Dir(c.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}

	f, err := os.Create(c.path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(c.Entries()); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	return nil
}

// Path returns the location of the cache file.
func (c *FileCache) Path() string {
	return c.path
}

// Verify FileCache implements both interfaces
var (
	_ TranslationCache = (*FileCache)(nil)
	_ Persister        = (*FileCache)(nil)
)
