package coingecko_markets

import (
	"strconv"

	cg "github.com/status-im/coin-tracker/coingecko_common"
)

const (
	MARKETS_API_PATH = "/coins/markets"
)

// MarketsRequestBuilder builds /coins/markets requests
type MarketsRequestBuilder struct {
	builder *cg.CoingeckoRequestBuilder
}

// NewMarketsRequestBuilder creates a builder preset to the first page by market cap,
// without sparklines, with 1h/24h/7d price changes
func NewMarketsRequestBuilder(baseURL string) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{
		builder: cg.NewCoingeckoRequestBuilder(baseURL, MARKETS_API_PATH),
	}

	rb.builder.
		WithCurrency("usd").
		With("order", "market_cap_desc").
		With("per_page", "50").
		With("page", "1").
		With("sparkline", "false").
		With("price_change_percentage", "1h,24h,7d")

	return rb
}

func (rb *MarketsRequestBuilder) WithCurrency(currency string) *MarketsRequestBuilder {
	rb.builder.WithCurrency(currency)
	return rb
}

func (rb *MarketsRequestBuilder) WithPerPage(perPage int) *MarketsRequestBuilder {
	if perPage > 0 {
		rb.builder.With("per_page", strconv.Itoa(perPage))
	}
	return rb
}

func (rb *MarketsRequestBuilder) WithPage(page int) *MarketsRequestBuilder {
	if page > 0 {
		rb.builder.With("page", strconv.Itoa(page))
	}
	return rb
}

func (rb *MarketsRequestBuilder) WithApiKey(apiKey string, keyType cg.KeyType) *MarketsRequestBuilder {
	rb.builder.WithApiKey(apiKey, keyType)
	return rb
}

// Builder exposes the underlying builder for Build/BuildURL
func (rb *MarketsRequestBuilder) Builder() *cg.CoingeckoRequestBuilder {
	return rb.builder
}
