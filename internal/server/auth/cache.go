package auth

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a verified digest stays valid in the cache.
const DefaultCacheTTL = 10 * time.Minute

// TokenCache remembers recently verified credential digests so repeated
// calls skip the store round trip. It is pure in-process state: nothing is
// persisted, and losing it only costs one extra store lookup per digest.
// Safe for concurrent use.
type TokenCache struct {
	mu      sync.Mutex
	entries map[string]time.Time // digest -> expiry instant
	ttl     time.Duration
	now     func() time.Time
}

// NewTokenCache builds a cache with the given TTL. A nil now func defaults
// to time.Now; tests inject their own clock.
func NewTokenCache(ttl time.Duration, now func() time.Time) *TokenCache {
	if now == nil {
		now = time.Now
	}
	return &TokenCache{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     now,
	}
}

// Contains reports whether the digest is cached and unexpired. An expired
// entry found here is evicted before the miss is reported.
func (c *TokenCache) Contains(digest string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiry, ok := c.entries[digest]
	if !ok {
		return false
	}
	if c.now().Before(expiry) {
		return true
	}
	delete(c.entries, digest)
	return false
}

// Add inserts or refreshes the digest with a full TTL.
func (c *TokenCache) Add(digest string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[digest] = c.now().Add(c.ttl)
}

// Clear drops every entry. Called after bootstrap so the next call per
// digest re-verifies against the store.
func (c *TokenCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]time.Time)
}

// Len returns the number of entries, expired or not.
func (c *TokenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
