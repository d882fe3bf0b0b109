package availability

import (
	"strings"
	"sync"
	"time"

	"sutra/models"
)

// Freshness classifies a cache lookup. Stale entries are still returned to
// callers so a dead upstream degrades to old data instead of an error.
type Freshness int

const (
	Miss Freshness = iota
	Fresh
	Stale
)

type cacheEntry struct {
	data     models.AvailabilityData
	storedAt time.Time
}

// Cache holds scraped availability keyed by title, year and country. Expiry
// is enforced at read time: entries past the TTL come back tagged Stale
// rather than silently served as current.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(title, year, country string) string {
	return strings.ToLower(title) + "|" + year + "|" + strings.ToLower(country)
}

// Lookup returns the stored data and its freshness. On Fresh and Stale hits
// the returned copy carries Cached=true and the original store time.
func (c *Cache) Lookup(title, year, country string) (models.AvailabilityData, Freshness) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(title, year, country)]
	c.mu.RUnlock()

	if !ok {
		return models.AvailabilityData{}, Miss
	}

	data := entry.data
	data.Cached = true
	storedAt := entry.storedAt
	data.CachedAt = &storedAt

	if c.now().Sub(entry.storedAt) > c.ttl {
		return data, Stale
	}
	return data, Fresh
}

func (c *Cache) Store(title, year, country string, data models.AvailabilityData) {
	c.mu.Lock()
	c.entries[cacheKey(title, year, country)] = cacheEntry{data: data, storedAt: c.now()}
	c.mu.Unlock()
}
