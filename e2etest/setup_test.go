package e2etest

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/core"
)

// TestEnv represents a test environment
type TestEnv struct {
	App           *core.App
	MockServer    *MockServer
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string

	cfg *config.Config
}

// SetupTest sets up the test environment
func SetupTest(t *testing.T) *TestEnv {
	ctx, cancel := context.WithCancel(context.Background())

	mockServer := NewMockServer()

	cfg, configPath, err := loadTestConfig(mockServer.GetURL())
	if err != nil {
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to load test config: %v", err)
	}

	env := &TestEnv{
		MockServer: mockServer,
		Context:    ctx,
		CancelFunc: cancel,
		ConfigPath: configPath,
		cfg:        cfg,
	}
	t.Cleanup(env.TearDown)

	env.startApp(t)
	return env
}

// startApp wires and starts every service against the configured database
func (env *TestEnv) startApp(t *testing.T) {
	app, err := core.Setup(env.Context, env.cfg, core.Options{WithServer: true})
	if err != nil {
		t.Fatalf("Failed to setup services: %v", err)
	}

	if err := app.Registry.StartAll(env.Context); err != nil {
		t.Fatalf("Failed to start services: %v", err)
	}
	env.App = app
	env.ServerBaseURL = fmt.Sprintf("http://127.0.0.1:%d", app.Server.Port())

	// Check that the server is running and responding
	resp, err := http.Get(env.ServerBaseURL + "/health")
	if err != nil {
		t.Fatalf("Server not responding: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Server returned unexpected status: %d", resp.StatusCode)
	}
}

// Restart stops every service, flushing pending writes, and starts a fresh
// set on the same database
func (env *TestEnv) Restart(t *testing.T) {
	env.App.Registry.StopAll()
	env.App = nil
	env.startApp(t)
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	if env.App != nil {
		env.App.Registry.StopAll()
		env.App = nil
	}
	if env.MockServer != nil {
		env.MockServer.Close()
	}
	if env.CancelFunc != nil {
		env.CancelFunc()
	}
	if env.ConfigPath != "" {
		cleanupTestConfig(env.ConfigPath)
	}
}
