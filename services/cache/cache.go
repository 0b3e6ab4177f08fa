package cache

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// CacheService represents a generic cache service
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// Gate is a negative cache over hosts that recently rate-limited us.
// A blocked host is skipped for the block window so repeated runs do not
// hammer a site that already asked us to back off. A nil *Gate is a no-op,
// so callers need no configuration checks.
type Gate struct {
	cache     CacheService
	blockTime time.Duration
}

// NewGate creates a fetch gate over the given cache service
func NewGate(cache CacheService, blockTime time.Duration) *Gate {
	return &Gate{cache: cache, blockTime: blockTime}
}

// Blocked reports whether the host of rawURL is currently blocked
func (g *Gate) Blocked(rawURL string) bool {
	if g == nil || g.cache == nil {
		return false
	}
	key, err := gateKey(rawURL)
	if err != nil {
		return false
	}
	_, err = g.cache.Get(key)
	return err == nil
}

// Block marks the host of rawURL as blocked for the gate's block window
func (g *Gate) Block(rawURL string) error {
	if g == nil || g.cache == nil {
		return nil
	}
	key, err := gateKey(rawURL)
	if err != nil {
		return err
	}
	seconds := strconv.Itoa(int(g.blockTime / time.Second))
	return g.cache.Set(key, []byte(seconds), g.blockTime)
}

// gateKey derives the cache key from the URL host
func gateKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("cannot derive gate key from %q", rawURL)
	}
	return "fetchgate:" + u.Host, nil
}
