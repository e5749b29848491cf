package coingecko_coins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/interfaces"
)

func testConfig(baseURL string) config.CoinGeckoConfig {
	cfg := config.Default().CoinGecko
	cfg.BaseURL = baseURL
	cfg.APIKey = "demo-key"
	return cfg
}

const ethereumDetail = `{
	"id": "ethereum",
	"symbol": "eth",
	"name": "Ethereum",
	"image": {"thumb": "t.png", "small": "s.png", "large": "l.png"},
	"description": {"en": "Ethereum is a decentralized platform."},
	"market_data": {
		"current_price": {"usd": 3000, "eur": 2800},
		"high_24h": {"usd": 3100},
		"low_24h": {"usd": 2900},
		"market_cap": {"usd": 360000000000},
		"total_volume": {"usd": 15000000000},
		"price_change_percentage_24h": -1.25,
		"price_change_percentage_24h_in_currency": {"usd": -1.25}
	}
}`

func TestCoinGeckoClient_FetchCoin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/ethereum", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "false", q.Get("localization"))
		assert.Equal(t, "false", q.Get("tickers"))
		assert.Equal(t, "false", q.Get("community_data"))
		assert.Equal(t, "false", q.Get("developer_data"))
		assert.Equal(t, "demo-key", r.Header.Get("x-cg-demo-api-key"))
		_, _ = w.Write([]byte(ethereumDetail))
	}))
	defer server.Close()

	client := NewCoinGeckoClient(testConfig(server.URL), nil)
	detail, err := client.FetchCoin(context.Background(), "ethereum")
	require.NoError(t, err)

	assert.Equal(t, "Ethereum", detail.Name)
	assert.Equal(t, "l.png", detail.Image.Large)
	assert.Equal(t, "Ethereum is a decentralized platform.", detail.Description.En)
	assert.Equal(t, 3000.0, detail.MarketData.CurrentPrice.USD())
	assert.Equal(t, 3100.0, detail.MarketData.High24h.USD())
	assert.Equal(t, 2900.0, detail.MarketData.Low24h.USD())
	change, ok := detail.MarketData.PriceChange24h()
	assert.True(t, ok)
	assert.Equal(t, -1.25, change)
	assert.True(t, client.Healthy())
}

func TestCoinGeckoClient_FetchCoinEscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/weird%2Fid", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"name":"Weird"}`))
	}))
	defer server.Close()

	detail, err := NewCoinGeckoClient(testConfig(server.URL), nil).FetchCoin(context.Background(), "weird/id")
	require.NoError(t, err)
	assert.Equal(t, "weird/id", detail.ID)
}

func TestCoinGeckoClient_FetchCoinErrors(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		_, err := NewCoinGeckoClient(testConfig("http://localhost"), nil).FetchCoin(context.Background(), " ")
		assert.ErrorContains(t, err, "coin ID is required")
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"coin not found"}`))
		}))
		defer server.Close()

		_, err := NewCoinGeckoClient(testConfig(server.URL), nil).FetchCoin(context.Background(), "nope")
		var fetchErr *interfaces.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, interfaces.ErrorKindUnknown, fetchErr.Kind)
		assert.Contains(t, fetchErr.Message, "coin not found")
	})

	t.Run("corrupt body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[1,2,3]`))
		}))
		defer server.Close()

		_, err := NewCoinGeckoClient(testConfig(server.URL), nil).FetchCoin(context.Background(), "bitcoin")
		assert.ErrorContains(t, err, "invalid coin response")
	})
}
