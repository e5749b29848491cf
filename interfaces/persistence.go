package interfaces

import "context"

//go:generate mockgen -destination=mocks/persistence.go . IPersistence

// IPersistence is the local storage contract used by the sync machines.
// Reads are total: failures are logged and a safe default is returned.
// Writes are best-effort and never block the caller on storage I/O.
type IPersistence interface {
	GetFavoriteIDs(ctx context.Context) FavoriteIDs
	SetFavoriteIDs(ctx context.Context, ids FavoriteIDs)

	// GetLastCoinList returns false on first run or corrupt data
	GetLastCoinList(ctx context.Context) ([]CoinSummary, bool)
	SetLastCoinList(ctx context.Context, coins []CoinSummary)

	GetLastCoinDetail(ctx context.Context, coinID string) (*CoinDetail, bool)
	SetLastCoinDetail(ctx context.Context, coinID string, detail *CoinDetail)

	GetThemeMode(ctx context.Context) (ThemeMode, bool)
	SetThemeMode(ctx context.Context, mode ThemeMode)

	// Clear removes every app key, favorites included
	Clear(ctx context.Context) error
}
