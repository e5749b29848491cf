package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/interfaces"
)

func newCoinGeckoStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000}]`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	cfg := config.Default()
	cfg.CoinGecko.BaseURL = baseURL
	cfg.CoinGecko.APIKey = "test-key"
	cfg.Storage.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.Server.Port = "0"
	return cfg
}

func TestSetup_WiresAndRunsServices(t *testing.T) {
	stub := newCoinGeckoStub(t)
	cfg := testConfig(t, stub.URL)
	ctx := context.Background()

	app, err := Setup(ctx, cfg, Options{WithServer: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"storage", "cache", "persistence", "theme", "coin_list", "api"}, app.Registry.Names())

	require.NoError(t, app.Registry.StartAll(ctx))

	require.NoError(t, app.Theme.WaitReady(ctx))
	assert.Equal(t, interfaces.ThemeModeDark, app.Theme.Mode())

	assert.Eventually(t, func() bool {
		return app.CoinList.State().Status == interfaces.SyncStatusSuccess
	}, 5*time.Second, 20*time.Millisecond)

	app.CoinList.ToggleFavorite(ctx, "bitcoin")
	app.Registry.StopAll()

	// A second run sees the flushed list and favorites
	app, err = Setup(ctx, cfg, Options{})
	require.NoError(t, err)
	assert.Nil(t, app.Server)
	defer app.Storage.Close()
	require.NoError(t, app.Persistence.Start(ctx))
	defer app.Persistence.Stop()

	favorites := app.Persistence.GetFavoriteIDs(ctx)
	assert.Equal(t, interfaces.FavoriteIDs{"bitcoin"}, favorites)
	coins, ok := app.Persistence.GetLastCoinList(ctx)
	require.True(t, ok)
	assert.Len(t, coins, 1)

	require.NoError(t, app.ClearLocalData(ctx))
	assert.Empty(t, app.Persistence.GetFavoriteIDs(ctx))
}

func TestSetup_InvalidSyncConfig(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Sync.DetailSessions = 0

	_, err := Setup(context.Background(), cfg, Options{})
	assert.Error(t, err)
}
