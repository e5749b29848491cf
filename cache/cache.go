package cache

import "time"

// LoaderFunc loads values for keys the cache does not hold.
// Keys absent from the returned map are treated as not found and are not cached.
type LoaderFunc func(missingKeys []string) (map[string][]byte, error)

// Cache is the in-memory layer that sits in front of the persistent key-value store
type Cache interface {
	// GetOrLoad returns cached values and calls loader for the rest.
	// With loadOnlyMissingKeys=false the loader receives every key when any is missing.
	// ttl of 0 uses the default expiration.
	GetOrLoad(keys []string, loader LoaderFunc, loadOnlyMissingKeys bool, ttl time.Duration) (map[string][]byte, error)

	// Get returns the values found and the keys that were missing
	Get(keys []string) (map[string][]byte, []string, error)

	// Set stores values, ttl of 0 uses the default expiration
	Set(data map[string][]byte, ttl time.Duration) error

	// Delete drops keys from the cache
	Delete(keys []string)

	// Clear drops everything
	Clear()
}
