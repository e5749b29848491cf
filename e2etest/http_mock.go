package e2etest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/status-im/coin-tracker/interfaces"
)

const (
	testAPIKey    = "test-demo-key"
	apiKeyHeader  = "x-cg-demo-api-key"
	apiPathPrefix = "/api/v3"
)

// MockServer is a stand-in for the CoinGecko REST API
type MockServer struct {
	server *httptest.Server

	mu         sync.RWMutex
	markets    []interfaces.CoinSummary
	details    map[string]*interfaces.CoinDetail
	ohlc       map[string][][5]float64
	failStatus int
	requests   map[string]int
}

// NewMockServer creates and starts a mock server with default data
func NewMockServer() *MockServer {
	ms := &MockServer{
		markets:  defaultMarketsData(),
		details:  defaultCoinDetails(),
		ohlc:     defaultOHLCData(),
		requests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	return ms
}

// GetURL returns the base URL of the mocked API, including /api/v3
func (ms *MockServer) GetURL() string {
	return ms.server.URL + apiPathPrefix
}

// Close stops the mock server
func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// SetFailure makes every request answer with status. 0 restores normal responses.
func (ms *MockServer) SetFailure(status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failStatus = status
}

// SetMarkets replaces the /coins/markets payload
func (ms *MockServer) SetMarkets(markets []interfaces.CoinSummary) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.markets = markets
}

// RequestCount returns how many requests hit path (relative to /api/v3)
func (ms *MockServer) RequestCount(path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requests[path]
}

func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, apiPathPrefix)
	log.Printf("MockServer: Received request for path: %s", path)

	ms.mu.Lock()
	ms.requests[path]++
	failStatus := ms.failStatus
	ms.mu.Unlock()

	if r.Header.Get(apiKeyHeader) != testAPIKey {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
		return
	}
	if failStatus != 0 {
		http.Error(w, fmt.Sprintf(`{"error":"mock failure %d"}`, failStatus), failStatus)
		return
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	switch {
	case path == "/coins/markets":
		writeJSON(w, ms.markets)

	case strings.HasPrefix(path, "/coins/") && strings.HasSuffix(path, "/ohlc"):
		coinID := strings.TrimSuffix(strings.TrimPrefix(path, "/coins/"), "/ohlc")
		candles, ok := ms.ohlc[coinID]
		if !ok {
			http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, candles)

	case strings.HasPrefix(path, "/coins/"):
		coinID := strings.TrimPrefix(path, "/coins/")
		detail, ok := ms.details[coinID]
		if !ok {
			http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, detail)

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("MockServer: failed to encode response: %v", err)
	}
}

func pct(v float64) *float64 { return &v }

func defaultMarketsData() []interfaces.CoinSummary {
	return []interfaces.CoinSummary{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 50000, MarketCap: 9.8e11, TotalVolume: 2.5e10, PriceChangePercentage24h: pct(2.5)},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3000, MarketCap: 3.6e11, TotalVolume: 1.2e10, PriceChangePercentage24h: pct(-1.2)},
		{ID: "tether", Symbol: "usdt", Name: "Tether", CurrentPrice: 1, MarketCap: 1.1e11, TotalVolume: 4e10},
	}
}

func defaultCoinDetails() map[string]*interfaces.CoinDetail {
	return map[string]*interfaces.CoinDetail{
		"bitcoin": {
			ID:          "bitcoin",
			Name:        "Bitcoin",
			Symbol:      "btc",
			Description: interfaces.CoinDescription{En: "The first decentralized cryptocurrency."},
			MarketData: interfaces.MarketData{
				CurrentPrice:             interfaces.CurrencyValues{"usd": 50000},
				High24h:                  interfaces.CurrencyValues{"usd": 51000},
				Low24h:                   interfaces.CurrencyValues{"usd": 48500},
				MarketCap:                interfaces.CurrencyValues{"usd": 9.8e11},
				TotalVolume:              interfaces.CurrencyValues{"usd": 2.5e10},
				PriceChangePercentage24h: pct(2.5),
			},
		},
		"ethereum": {
			ID:     "ethereum",
			Name:   "Ethereum",
			Symbol: "eth",
			MarketData: interfaces.MarketData{
				CurrentPrice: interfaces.CurrencyValues{"usd": 3000},
			},
		},
	}
}

func defaultOHLCData() map[string][][5]float64 {
	return map[string][][5]float64{
		"bitcoin": {
			{1700000000000, 49000, 49500, 48800, 49200},
			{1700014400000, 49200, 50100, 49100, 50000},
			{1700028800000, 50000, 50500, 49900, 50400},
		},
		"ethereum": {
			{1700000000000, 2950, 3010, 2940, 3000},
		},
	}
}
