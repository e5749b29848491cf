package coin_list

import (
	"strings"
	"time"

	"github.com/status-im/coin-tracker/interfaces"
)

// State is an immutable snapshot of the list machine. Slices are never
// modified after publication.
type State struct {
	Status     interfaces.SyncStatus  `json:"status"`
	Coins      []interfaces.Coin      `json:"coins"`
	Favorites  interfaces.FavoriteIDs `json:"favorites"`
	SearchTerm string                 `json:"search_term"`
	// Error is a hard error when Status is error/offline, an advisory otherwise
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCoins reports whether there is anything to render
func (s State) HasCoins() bool {
	return len(s.Coins) > 0
}

// Filter returns the coins whose name or symbol contains term, case-insensitively.
// An empty term returns coins unchanged.
func Filter(coins []interfaces.Coin, term string) []interfaces.Coin {
	if term == "" {
		return coins
	}

	lowerTerm := strings.ToLower(term)
	result := make([]interfaces.Coin, 0, len(coins))
	for _, coin := range coins {
		if strings.Contains(strings.ToLower(coin.Name), lowerTerm) ||
			strings.Contains(strings.ToLower(coin.Symbol), lowerTerm) {
			result = append(result, coin)
		}
	}
	return result
}

// setFavorite returns a copy of coins with isFavorite recomputed for coinID
func setFavorite(coins []interfaces.Coin, coinID string, isFavorite bool) []interfaces.Coin {
	result := make([]interfaces.Coin, len(coins))
	for i, coin := range coins {
		if coin.ID == coinID {
			coin.IsFavorite = isFavorite
		}
		result[i] = coin
	}
	return result
}

// reflagFavorites recomputes every coin's favorite flag from favorites
func reflagFavorites(coins []interfaces.Coin, favorites interfaces.FavoriteIDs) []interfaces.Coin {
	result := make([]interfaces.Coin, len(coins))
	for i, coin := range coins {
		coin.IsFavorite = favorites.Contains(coin.ID)
		result[i] = coin
	}
	return result
}

func advisoryMessage(err error) string {
	switch interfaces.ClassifyError(err) {
	case interfaces.ErrorKindNetwork:
		return interfaces.AdvisoryOffline
	case interfaces.ErrorKindAuth:
		return interfaces.AdvisoryAuthFailed
	default:
		return interfaces.AdvisoryListStale
	}
}
