package coingecko_coins

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	cg "github.com/status-im/coin-tracker/coingecko_common"
	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/metrics"
)

// APIClient fetches a single coin's detail record
type APIClient interface {
	FetchCoin(ctx context.Context, coinID string) (*interfaces.CoinDetail, error)
	Healthy() bool
}

type CoinGeckoClient struct {
	config          config.CoinGeckoConfig
	keyType         cg.KeyType
	httpClient      *cg.HTTPClient
	successfulFetch atomic.Bool
}

func NewCoinGeckoClient(cfg config.CoinGeckoConfig, limiter cg.IRateLimiter) *CoinGeckoClient {
	opts := cg.DefaultClientOptions()
	opts.LogPrefix = "CoinGecko-Coins"
	opts.RequestTimeout = cfg.RequestTimeout()

	return &CoinGeckoClient{
		config:     cfg,
		keyType:    cg.ParseKeyType(cfg.APIKeyType),
		httpClient: cg.NewHTTPClient(opts, metrics.NewMetricsWriter(metrics.ServiceCoins), limiter),
	}
}

func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

func (c *CoinGeckoClient) FetchCoin(ctx context.Context, coinID string) (*interfaces.CoinDetail, error) {
	if strings.TrimSpace(coinID) == "" {
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: "coin ID is required"}
	}

	request, err := NewCoinRequestBuilder(c.config.BaseURL, coinID).
		WithApiKey(c.config.APIKey, c.keyType).
		Builder().
		Build(ctx)
	if err != nil {
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: "failed to build coin request", Err: err}
	}

	body, duration, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		return nil, err
	}

	var detail interfaces.CoinDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		log.Printf("CoinGecko-Coins: Error parsing JSON response for %s: %v", coinID, err)
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: fmt.Sprintf("invalid coin response: %v", err), Err: err}
	}
	if detail.ID == "" {
		detail.ID = coinID
	}

	log.Printf("CoinGecko-Coins: Fetched %s in %.2fs", coinID, duration.Seconds())
	c.successfulFetch.Store(true)
	return &detail, nil
}
