package coingecko_common

import (
	"math"

	"golang.org/x/time/rate"

	"github.com/status-im/coin-tracker/config"
)

// Defaults in requests per minute, used when config is not provided
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

// NewRateLimiter builds the limiter shared by every client using the configured key
func NewRateLimiter(cfg config.CoinGeckoConfig) *rate.Limiter {
	keyType := ParseKeyType(cfg.APIKeyType)
	if cfg.APIKey == "" {
		keyType = NoKey
	}
	settings := cfg.RateLimits.ForKeyType(keyType.String())

	rpm := settings.RateLimitPerMinute
	if rpm <= 0 {
		switch keyType {
		case ProKey:
			rpm = defaultProRPM
		case DemoKey:
			rpm = defaultDemoRPM
		default:
			rpm = defaultNoKeyRPM
		}
	}
	limit := rate.Limit(float64(rpm) / 60.0)

	burst := settings.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

// defaultBurstForLimit allows a detail screen's two parallel requests through at once
func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 3
	}
	return int(math.Ceil(float64(limit))) + 2
}
