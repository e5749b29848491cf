package coingecko_coins

import (
	"fmt"
	"net/url"

	cg "github.com/status-im/coin-tracker/coingecko_common"
)

const (
	COIN_API_PATH_TEMPLATE = "/coins/%s"
)

// CoinRequestBuilder builds /coins/{id} requests without localization,
// tickers, community or developer data
type CoinRequestBuilder struct {
	builder *cg.CoingeckoRequestBuilder
	coinID  string
}

func NewCoinRequestBuilder(baseURL, coinID string) *CoinRequestBuilder {
	apiPath := fmt.Sprintf(COIN_API_PATH_TEMPLATE, url.PathEscape(coinID))

	rb := &CoinRequestBuilder{
		builder: cg.NewCoingeckoRequestBuilder(baseURL, apiPath),
		coinID:  coinID,
	}

	rb.builder.
		With("localization", "false").
		With("tickers", "false").
		With("community_data", "false").
		With("developer_data", "false")

	return rb
}

func (rb *CoinRequestBuilder) WithApiKey(apiKey string, keyType cg.KeyType) *CoinRequestBuilder {
	rb.builder.WithApiKey(apiKey, keyType)
	return rb
}

func (rb *CoinRequestBuilder) Builder() *cg.CoingeckoRequestBuilder {
	return rb.builder
}
