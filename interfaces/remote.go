package interfaces

import "context"

//go:generate mockgen -destination=mocks/remote.go . IRemoteDataService

// IRemoteDataService is the read-only CoinGecko surface the app consumes.
// Every error it returns is a *FetchError. No retries happen behind it.
type IRemoteDataService interface {
	// FetchCoinMarkets returns the first page of coins ordered by market cap
	FetchCoinMarkets(ctx context.Context) ([]CoinSummary, error)

	// FetchCoinDetails returns the detail record for one coin
	FetchCoinDetails(ctx context.Context, coinID string) (*CoinDetail, error)

	// FetchOHLC returns candles for the last days days, ascending by timestamp
	FetchOHLC(ctx context.Context, coinID string, days float64) ([]OHLCPoint, error)
}
