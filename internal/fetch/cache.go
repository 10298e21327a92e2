// File: internal/fetch/cache.go
package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// cacheEntry is the on-disk envelope for a cached page.
type cacheEntry struct {
	Key       string    `json:"key"`
	FetchedAt time.Time `json:"fetchedAt"`
	Body      []byte    `json:"body"`
}

// Cache is a per-key on-disk page cache with a freshness TTL. It is created
// at run start with an explicit directory and lifetime; corrupt or stale
// entries are treated as misses, never as errors.
type Cache struct {
	dir    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache creates the cache directory if needed and returns a Cache rooted there.
func NewCache(dir string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	return &Cache{dir: dir, ttl: ttl, logger: logger.Named("cache")}, nil
}

// path maps a cache key to a file path. Keys are slugs or letter identifiers;
// anything outside a conservative character set is flattened to '_'.
func (c *Cache) path(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(c.dir, sanitized+".json")
}

// Get returns the cached body for key if a fresh entry exists.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("Cache file corrupted, it will be ignored.", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	if entry.Key != key || (c.ttl > 0 && time.Since(entry.FetchedAt) > c.ttl) {
		return nil, false
	}
	return entry.Body, true
}

// Put stores body under key. A failed write is logged and swallowed; the
// fetch already succeeded and the run should not die over a cache file.
func (c *Cache) Put(key string, body []byte) {
	entry := cacheEntry{Key: key, FetchedAt: time.Now(), Body: body}
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Error("Failed to marshal cache entry.", zap.Error(err), zap.String("key", key))
		return
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		c.logger.Warn("Could not write cache file", zap.Error(err), zap.String("key", key))
	}
}
