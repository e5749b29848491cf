package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	KeyTypeDemo = "demo"
	KeyTypePro  = "pro"
)

// CoinGeckoConfig configures the remote market data API
type CoinGeckoConfig struct {
	BaseURL          string       `yaml:"base_url" toml:"base_url"`
	APIKey           string       `yaml:"api_key" toml:"api_key"`
	APIKeyType       string       `yaml:"api_key_type" toml:"api_key_type"`
	RequestTimeoutMs int          `yaml:"request_timeout_ms" toml:"request_timeout_ms"`
	VsCurrency       string       `yaml:"vs_currency" toml:"vs_currency"`
	PerPage          int          `yaml:"per_page" toml:"per_page"`
	RateLimits       APIKeyConfig `yaml:"rate_limits" toml:"rate_limits"`
}

// RequestTimeout returns the per-request timeout
func (c CoinGeckoConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// Validate checks the settings required at startup
func (c CoinGeckoConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("coingecko base_url is required (COINGECKO_API_BASE_URL)")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid coingecko base_url: %s", c.BaseURL)
	}
	if c.APIKey == "" {
		return fmt.Errorf("coingecko api_key is required (COINGECKO_API_KEY)")
	}
	if c.APIKeyType != KeyTypeDemo && c.APIKeyType != KeyTypePro {
		return fmt.Errorf("api_key_type must be %q or %q, got %q", KeyTypeDemo, KeyTypePro, c.APIKeyType)
	}
	if c.RequestTimeoutMs <= 0 {
		return fmt.Errorf("request_timeout_ms must be positive")
	}
	if c.PerPage < 1 || c.PerPage > 250 {
		return fmt.Errorf("per_page must be between 1 and 250, got %d", c.PerPage)
	}
	if c.VsCurrency == "" {
		return fmt.Errorf("vs_currency cannot be empty")
	}
	return nil
}
