package coingecko_ohlc

import (
	"fmt"
	"net/url"
	"strconv"

	cg "github.com/status-im/coin-tracker/coingecko_common"
)

const (
	OHLC_API_PATH_TEMPLATE = "/coins/%s/ohlc"
)

type OHLCRequestBuilder struct {
	builder *cg.CoingeckoRequestBuilder
	coinID  string
}

func NewOHLCRequestBuilder(baseURL, coinID string) *OHLCRequestBuilder {
	apiPath := fmt.Sprintf(OHLC_API_PATH_TEMPLATE, url.PathEscape(coinID))

	rb := &OHLCRequestBuilder{
		builder: cg.NewCoingeckoRequestBuilder(baseURL, apiPath),
		coinID:  coinID,
	}

	rb.builder.WithCurrency("usd")
	rb.WithDays(7)

	return rb
}

// WithDays sets the range. Fractions are kept, 1/24 is sent as 0.041666666666666664.
func (rb *OHLCRequestBuilder) WithDays(days float64) *OHLCRequestBuilder {
	rb.builder.With("days", FormatDays(days))
	return rb
}

func (rb *OHLCRequestBuilder) WithCurrency(currency string) *OHLCRequestBuilder {
	rb.builder.WithCurrency(currency)
	return rb
}

func (rb *OHLCRequestBuilder) WithApiKey(apiKey string, keyType cg.KeyType) *OHLCRequestBuilder {
	rb.builder.WithApiKey(apiKey, keyType)
	return rb
}

func (rb *OHLCRequestBuilder) Builder() *cg.CoingeckoRequestBuilder {
	return rb.builder
}

// FormatDays renders a day count with the shortest exact decimal form
func FormatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}
