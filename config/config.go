package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/status-im/coin-tracker/cache"
	"github.com/status-im/coin-tracker/persistence"
)

type Config struct {
	CoinGecko   CoinGeckoConfig    `yaml:"coingecko" toml:"coingecko"`
	Storage     StorageConfig      `yaml:"storage" toml:"storage"`
	Persistence persistence.Config `yaml:"persistence" toml:"persistence"`
	Cache       cache.Config       `yaml:"cache" toml:"cache"`
	Sync        SyncConfig         `yaml:"sync" toml:"sync"`
	Server      ServerConfig       `yaml:"server" toml:"server"`
	Logging     LoggingConfig      `yaml:"logging" toml:"logging"`
}

// StorageConfig locates the local database
type StorageConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// SyncConfig configures the synchronization machines
type SyncConfig struct {
	// DefaultTimeFrameDays is the chart range a detail view opens with
	DefaultTimeFrameDays float64 `yaml:"default_time_frame_days" toml:"default_time_frame_days"`
	// DetailSessions bounds how many coin detail sessions are kept alive
	DetailSessions int `yaml:"detail_sessions" toml:"detail_sessions"`
}

type ServerConfig struct {
	Port string `yaml:"port" toml:"port"`
}

type LoggingConfig struct {
	// File receives log output in terminal UI mode
	File string `yaml:"file" toml:"file"`
}

// Default returns a configuration with every optional setting filled in
func Default() *Config {
	return &Config{
		CoinGecko: CoinGeckoConfig{
			APIKeyType:       KeyTypeDemo,
			RequestTimeoutMs: 10000,
			VsCurrency:       "usd",
			PerPage:          50,
		},
		Storage:     StorageConfig{Path: "coin_tracker.db"},
		Persistence: persistence.DefaultConfig(),
		Cache:       cache.DefaultCacheConfig(),
		Sync: SyncConfig{
			DefaultTimeFrameDays: 30,
			DetailSessions:       16,
		},
		Server:  ServerConfig{Port: "8080"},
		Logging: LoggingConfig{File: "coin_tracker.log"},
	}
}

// LoadConfig reads a YAML file (TOML when the extension is .toml) on top of
// the defaults, loads a .env file next to it if present, applies environment
// overrides and validates the result. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := unmarshal(path, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		loadDotEnv(filepath.Join(filepath.Dir(path), ".env"))
	}
	loadDotEnv(".env")

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// loadDotEnv never overrides variables that are already set
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config: failed to load %s: %v", path, err)
	}
}

func overrideWithEnv(cfg *Config) {
	if cfg.CoinGecko.APIKey != "" {
		log.Printf("Config: API key found in config file, prefer COINGECKO_API_KEY")
	}
	if v := os.Getenv("COINGECKO_API_BASE_URL"); v != "" {
		cfg.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("COINGECKO_API_KEY_TYPE"); v != "" {
		cfg.CoinGecko.APIKeyType = strings.ToLower(v)
	}
	if v := os.Getenv("COIN_TRACKER_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
}

// Validate checks the whole configuration
func (c *Config) Validate() error {
	if err := c.CoinGecko.Validate(); err != nil {
		return err
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path cannot be empty")
	}
	if c.Persistence.KeyPrefix == "" {
		return fmt.Errorf("persistence key_prefix cannot be empty")
	}
	if c.Persistence.DetailCacheSize <= 0 {
		return fmt.Errorf("persistence detail_cache_size must be positive")
	}
	if c.Persistence.WriteTimeoutMs <= 0 {
		return fmt.Errorf("persistence write_timeout_ms must be positive")
	}
	if c.Sync.DefaultTimeFrameDays <= 0 {
		return fmt.Errorf("sync default_time_frame_days must be positive")
	}
	if c.Sync.DetailSessions <= 0 {
		return fmt.Errorf("sync detail_sessions must be positive")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	return nil
}
