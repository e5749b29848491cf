package coingecko_markets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"

	cg "github.com/status-im/coin-tracker/coingecko_common"
	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/metrics"
)

// APIClient fetches the coin list
type APIClient interface {
	// FetchMarkets fetches the first page of coins ordered by market cap
	FetchMarkets(ctx context.Context) ([]interfaces.CoinSummary, error)
	// Healthy reports whether at least one fetch succeeded
	Healthy() bool
}

// CoinGeckoClient implements APIClient for CoinGecko
type CoinGeckoClient struct {
	config          config.CoinGeckoConfig
	keyType         cg.KeyType
	httpClient      *cg.HTTPClient
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new CoinGecko markets client
func NewCoinGeckoClient(cfg config.CoinGeckoConfig, limiter cg.IRateLimiter) *CoinGeckoClient {
	opts := cg.DefaultClientOptions()
	opts.LogPrefix = "CoinGecko-Markets"
	opts.RequestTimeout = cfg.RequestTimeout()

	return &CoinGeckoClient{
		config:     cfg,
		keyType:    cg.ParseKeyType(cfg.APIKeyType),
		httpClient: cg.NewHTTPClient(opts, metrics.NewMetricsWriter(metrics.ServiceMarkets), limiter),
	}
}

// Healthy checks if the API has had at least one successful fetch
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchMarkets fetches the coin list
func (c *CoinGeckoClient) FetchMarkets(ctx context.Context) ([]interfaces.CoinSummary, error) {
	request, err := NewMarketsRequestBuilder(c.config.BaseURL).
		WithCurrency(c.config.VsCurrency).
		WithPerPage(c.config.PerPage).
		WithApiKey(c.config.APIKey, c.keyType).
		Builder().
		Build(ctx)
	if err != nil {
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: "failed to build markets request", Err: err}
	}

	body, duration, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		return nil, err
	}

	var coins []interfaces.CoinSummary
	if err := json.Unmarshal(body, &coins); err != nil {
		log.Printf("CoinGecko-Markets: Error parsing JSON response: %v", err)
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: fmt.Sprintf("invalid markets response: %v", err), Err: err}
	}

	log.Printf("CoinGecko-Markets: Fetched %d coins in %.2fs", len(coins), duration.Seconds())
	c.successfulFetch.Store(true)
	return coins, nil
}
