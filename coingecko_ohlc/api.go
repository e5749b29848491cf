package coingecko_ohlc

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync/atomic"

	cg "github.com/status-im/coin-tracker/coingecko_common"
	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/metrics"
)

// IAPIClient fetches candle series
type IAPIClient interface {
	FetchOHLC(ctx context.Context, coinID string, days float64) ([]interfaces.OHLCPoint, error)
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
	opts.LogPrefix = "CoinGecko-OHLC"
	opts.RequestTimeout = cfg.RequestTimeout()

	return &CoinGeckoClient{
		config:     cfg,
		keyType:    cg.ParseKeyType(cfg.APIKeyType),
		httpClient: cg.NewHTTPClient(opts, metrics.NewMetricsWriter(metrics.ServiceOHLC), limiter),
	}
}

func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

func (c *CoinGeckoClient) FetchOHLC(ctx context.Context, coinID string, days float64) ([]interfaces.OHLCPoint, error) {
	if strings.TrimSpace(coinID) == "" {
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: "coin ID is required"}
	}
	if days <= 0 || math.IsNaN(days) || math.IsInf(days, 0) {
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: fmt.Sprintf("invalid days parameter: %v", days)}
	}

	request, err := NewOHLCRequestBuilder(c.config.BaseURL, coinID).
		WithCurrency(c.config.VsCurrency).
		WithDays(days).
		WithApiKey(c.config.APIKey, c.keyType).
		Builder().
		Build(ctx)
	if err != nil {
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: "failed to build ohlc request", Err: err}
	}

	body, duration, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		return nil, err
	}

	points, err := ParseOHLC(body)
	if err != nil {
		log.Printf("CoinGecko-OHLC: Error parsing response for %s: %v", coinID, err)
		return nil, &interfaces.FetchError{Kind: interfaces.ErrorKindUnknown, Message: fmt.Sprintf("invalid ohlc response: %v", err), Err: err}
	}

	log.Printf("CoinGecko-OHLC: Fetched %d candles for %s (%s days) in %.2fs",
		len(points), coinID, FormatDays(days), duration.Seconds())
	c.successfulFetch.Store(true)
	return points, nil
}
