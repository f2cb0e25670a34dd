package catalog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheEntry is one cached lab tab.
type CacheEntry struct {
	Tests     []Test
	ExpiresAt time.Time
}

// ResponseCache provides in-memory caching for sheet fetches so interactive
// callers re-running scenarios do not hammer the gviz endpoint. It is opt-in
// via ENABLE_SHEET_CACHE and disabled outright when API_ENV=production; a
// production deployment should sit behind the sqlite catalog store instead.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled, else nil.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_SHEET_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("SHEET_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &ResponseCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached tab if present and not expired.
func (c *ResponseCache) Get(key string) ([]Test, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Tests, true
}

// Set stores a fetched tab.
func (c *ResponseCache) Set(key string, tests []Test) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Tests:     tests,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

func cacheKey(sheetID, lab string) string {
	return fmt.Sprintf("%s:%s", sheetID, lab)
}
