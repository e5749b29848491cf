package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache is a byte-slice cache on top of go-cache
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a GoCache; items expire after defaultExpiration and are
// purged every cleanupInterval
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// GetResult splits a lookup into found values and missing keys
type GetResult struct {
	Found       map[string][]byte
	MissingKeys []string
}

// Get looks up every key
func (gc *GoCache) Get(keys []string) GetResult {
	result := GetResult{
		Found:       make(map[string][]byte),
		MissingKeys: make([]string, 0),
	}

	for _, key := range keys {
		value, found := gc.cache.Get(key)
		data, ok := value.([]byte)
		if !found || !ok {
			result.MissingKeys = append(result.MissingKeys, key)
			continue
		}
		result.Found[key] = data
	}

	return result
}

// Set stores every pair with timeout (0 = default, cache.NoExpiration = never)
func (gc *GoCache) Set(data map[string][]byte, timeout time.Duration) {
	for key, value := range data {
		gc.cache.Set(key, value, timeout)
	}
}

// Delete removes keys
func (gc *GoCache) Delete(keys []string) {
	for _, key := range keys {
		gc.cache.Delete(key)
	}
}

// Clear removes all items
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items, expired but not yet purged ones included
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}

// DeleteExpired purges expired items now
func (gc *GoCache) DeleteExpired() {
	gc.cache.DeleteExpired()
}
