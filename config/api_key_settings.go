package config

// APIKeyConfig configures rate limiting per CoinGecko key type
type APIKeyConfig struct {
	// Requests per minute and burst per type. If zero, defaults are used.
	Pro   RateLimit `yaml:"pro" toml:"pro"`
	Demo  RateLimit `yaml:"demo" toml:"demo"`
	NoKey RateLimit `yaml:"nokey" toml:"nokey"`
}

// RateLimit represents a simple rpm + burst pair
type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" toml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst" toml:"burst"`
}

// ForKeyType returns the limit configured for a key type name ("pro", "demo" or anything else)
func (c APIKeyConfig) ForKeyType(keyType string) RateLimit {
	switch keyType {
	case KeyTypePro:
		return c.Pro
	case KeyTypeDemo:
		return c.Demo
	default:
		return c.NoKey
	}
}
