package interfaces

import (
	"math"
	"time"
)

// CoinSummary is one row of the /coins/markets response
type CoinSummary struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             float64  `json:"current_price"`
	MarketCap                float64  `json:"market_cap"`
	TotalVolume              float64  `json:"total_volume"`
	CirculatingSupply        float64  `json:"circulating_supply"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`

	// Requested through price_change_percentage=1h,24h,7d
	PriceChangePercentage1hInCurrency  *float64 `json:"price_change_percentage_1h_in_currency,omitempty"`
	PriceChangePercentage7dInCurrency  *float64 `json:"price_change_percentage_7d_in_currency,omitempty"`
	PriceChangePercentage24hInCurrency *float64 `json:"price_change_percentage_24h_in_currency,omitempty"`
}

// PriceChange24h returns the 24h change and whether it is usable (present and not NaN)
func (c CoinSummary) PriceChange24h() (float64, bool) {
	return validPercentage(c.PriceChangePercentage24h)
}

func validPercentage(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// Coin is a CoinSummary joined with the favorite set
type Coin struct {
	CoinSummary
	IsFavorite bool `json:"is_favorite"`
}

// JoinFavorites marks every summary whose id is in favorites
func JoinFavorites(summaries []CoinSummary, favorites FavoriteIDs) []Coin {
	coins := make([]Coin, 0, len(summaries))
	for _, summary := range summaries {
		coins = append(coins, Coin{
			CoinSummary: summary,
			IsFavorite:  favorites.Contains(summary.ID),
		})
	}
	return coins
}

// CurrencyValues maps a vs_currency code to a value, e.g. {"usd": 50000}
type CurrencyValues map[string]float64

// USD returns the usd entry or 0
func (v CurrencyValues) USD() float64 {
	return v["usd"]
}

// CoinImage holds the image URLs returned by /coins/{id}
type CoinImage struct {
	Thumb string `json:"thumb,omitempty"`
	Small string `json:"small,omitempty"`
	Large string `json:"large"`
}

// CoinDescription holds localized descriptions, only "en" is requested
type CoinDescription struct {
	En string `json:"en"`
}

// MarketData is the nested market block of a coin detail
type MarketData struct {
	CurrentPrice                       CurrencyValues `json:"current_price"`
	High24h                            CurrencyValues `json:"high_24h"`
	Low24h                             CurrencyValues `json:"low_24h"`
	MarketCap                          CurrencyValues `json:"market_cap"`
	TotalVolume                        CurrencyValues `json:"total_volume"`
	PriceChangePercentage24h           *float64       `json:"price_change_percentage_24h"`
	PriceChangePercentage24hInCurrency CurrencyValues `json:"price_change_percentage_24h_in_currency,omitempty"`
}

// PriceChange24h returns the 24h change and whether it is usable
func (m MarketData) PriceChange24h() (float64, bool) {
	if v, ok := validPercentage(m.PriceChangePercentage24h); ok {
		return v, true
	}
	if v, ok := m.PriceChangePercentage24hInCurrency["usd"]; ok {
		return validPercentage(&v)
	}
	return 0, false
}

// CoinDetail is the /coins/{id} payload reduced to the fields the app uses
type CoinDetail struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Image       CoinImage       `json:"image"`
	Description CoinDescription `json:"description"`
	MarketData  MarketData      `json:"market_data"`
}

// OHLCPoint is one candle; Timestamp is unix milliseconds
type OHLCPoint struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

// Time returns the candle timestamp as time.Time
func (p OHLCPoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// FavoriteIDs is the favorite set. Membership is what matters, order is kept as inserted.
type FavoriteIDs []string

// Contains reports whether id is a favorite
func (f FavoriteIDs) Contains(id string) bool {
	for _, fav := range f {
		if fav == id {
			return true
		}
	}
	return false
}

// Toggle returns a new set with id's membership flipped and the new membership
func (f FavoriteIDs) Toggle(id string) (FavoriteIDs, bool) {
	if f.Contains(id) {
		next := make(FavoriteIDs, 0, len(f))
		for _, fav := range f {
			if fav != id {
				next = append(next, fav)
			}
		}
		return next, false
	}

	next := make(FavoriteIDs, 0, len(f)+1)
	next = append(next, f...)
	next = append(next, id)
	return next, true
}

// Normalize drops empty and duplicate ids, keeping first occurrence order
func (f FavoriteIDs) Normalize() FavoriteIDs {
	seen := make(map[string]struct{}, len(f))
	result := make(FavoriteIDs, 0, len(f))
	for _, id := range f {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
