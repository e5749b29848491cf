package cache

import "time"

// Config represents cache configuration
type Config struct {
	GoCache GoCacheConfig `yaml:"go_cache" toml:"go_cache"`
}

// GoCacheConfig configures the go-cache instance
type GoCacheConfig struct {
	// DefaultExpirationMs is the lifetime of an entry, 0 keeps entries until evicted explicitly
	DefaultExpirationMs int `yaml:"default_expiration_ms" toml:"default_expiration_ms"`

	// CleanupIntervalMs is how often expired entries are purged
	CleanupIntervalMs int `yaml:"cleanup_interval_ms" toml:"cleanup_interval_ms"`

	// Enabled turns caching on; when off every read goes to the loader
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// DefaultExpiration returns the configured default expiration
func (c GoCacheConfig) DefaultExpiration() time.Duration {
	return time.Duration(c.DefaultExpirationMs) * time.Millisecond
}

// CleanupInterval returns the configured cleanup interval
func (c GoCacheConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMs) * time.Millisecond
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		GoCache: GoCacheConfig{
			DefaultExpirationMs: int((5 * time.Minute).Milliseconds()),
			CleanupIntervalMs:   int((10 * time.Minute).Milliseconds()),
			Enabled:             true,
		},
	}
}
