package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/coin-tracker/config"
)

// createTestConfig writes a test configuration into a new temp directory and
// returns the path to the file
func createTestConfig(mockURL string) (string, error) {
	tempDir, err := os.MkdirTemp("", "coin-tracker-test")
	if err != nil {
		return "", err
	}

	configContent := fmt.Sprintf(`
coingecko:
  base_url: "%s"           # mock server
  api_key: "%s"
  api_key_type: demo
  request_timeout_ms: 2000   # short timeout for tests
  per_page: 50
  rate_limits:
    demo:
      rate_limit_per_minute: 6000   # no throttling in tests
      burst: 100

storage:
  path: "%s"

persistence:
  key_prefix: "@CryptoCredWallet:"
  detail_cache_size: 10
  write_timeout_ms: 2000

sync:
  default_time_frame_days: 7
  detail_sessions: 4

server:
  port: "0"                  # any free port

logging:
  file: "%s"
`, mockURL, testAPIKey, filepath.Join(tempDir, "coin_tracker.db"), filepath.Join(tempDir, "coin_tracker.log"))

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temp directory holding the config and database
func cleanupTestConfig(configPath string) {
	if configPath != "" {
		os.RemoveAll(filepath.Dir(configPath))
	}
}
