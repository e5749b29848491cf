package persistence

import "time"

const (
	KeyFavorites      = "favorites"
	KeyLastCoinList   = "lastCoinList"
	KeyThemeMode      = "themeMode"
	keyCoinDetailBase = "coinDetail:"
)

// Config configures the local persistence layer
type Config struct {
	// KeyPrefix namespaces every key written by the app
	KeyPrefix string `yaml:"key_prefix" toml:"key_prefix"`

	// DetailCacheSize bounds how many coin details are kept on disk
	DetailCacheSize int `yaml:"detail_cache_size" toml:"detail_cache_size"`

	// WriteTimeoutMs bounds a single write-behind flush
	WriteTimeoutMs int `yaml:"write_timeout_ms" toml:"write_timeout_ms"`
}

// WriteTimeout returns the flush timeout
func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMs) * time.Millisecond
}

// DefaultConfig returns the defaults used by the mobile app
func DefaultConfig() Config {
	return Config{
		KeyPrefix:       "@CryptoCredWallet:",
		DetailCacheSize: 100,
		WriteTimeoutMs:  5000,
	}
}
