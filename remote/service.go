package remote

import (
	"context"

	cg "github.com/status-im/coin-tracker/coingecko_common"
	"github.com/status-im/coin-tracker/coingecko_coins"
	"github.com/status-im/coin-tracker/coingecko_markets"
	"github.com/status-im/coin-tracker/coingecko_ohlc"
	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/interfaces"
)

var _ interfaces.IRemoteDataService = (*Service)(nil)

// Service is the remote data source backed by the three CoinGecko clients.
// The clients share one rate limiter.
type Service struct {
	markets coingecko_markets.APIClient
	coins   coingecko_coins.APIClient
	ohlc    coingecko_ohlc.IAPIClient
}

// NewService creates the CoinGecko clients for cfg
func NewService(cfg config.CoinGeckoConfig) *Service {
	limiter := cg.NewRateLimiter(cfg)
	return NewServiceWithClients(
		coingecko_markets.NewCoinGeckoClient(cfg, limiter),
		coingecko_coins.NewCoinGeckoClient(cfg, limiter),
		coingecko_ohlc.NewCoinGeckoClient(cfg, limiter),
	)
}

// NewServiceWithClients composes already built clients
func NewServiceWithClients(markets coingecko_markets.APIClient, coins coingecko_coins.APIClient, ohlc coingecko_ohlc.IAPIClient) *Service {
	return &Service{markets: markets, coins: coins, ohlc: ohlc}
}

func (s *Service) FetchCoinMarkets(ctx context.Context) ([]interfaces.CoinSummary, error) {
	return s.markets.FetchMarkets(ctx)
}

func (s *Service) FetchCoinDetails(ctx context.Context, coinID string) (*interfaces.CoinDetail, error) {
	return s.coins.FetchCoin(ctx, coinID)
}

func (s *Service) FetchOHLC(ctx context.Context, coinID string, days float64) ([]interfaces.OHLCPoint, error) {
	return s.ohlc.FetchOHLC(ctx, coinID, days)
}

// Healthy reports whether every endpoint has answered at least once
func (s *Service) Healthy() bool {
	return s.markets.Healthy() && s.coins.Healthy() && s.ohlc.Healthy()
}

// Status reports per-endpoint health
func (s *Service) Status() map[string]bool {
	return map[string]bool{
		"markets": s.markets.Healthy(),
		"coins":   s.coins.Healthy(),
		"ohlc":    s.ohlc.Healthy(),
	}
}
