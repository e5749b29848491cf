package coin_list

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/status-im/coin-tracker/interfaces"
)

func TestFilter(t *testing.T) {
	coins := interfaces.JoinFavorites([]interfaces.CoinSummary{bitcoin, ethereum, tether}, nil)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term is identity", "", []string{"bitcoin", "ethereum", "tether"}},
		{"name substring", "coin", []string{"bitcoin"}},
		{"symbol substring", "usd", []string{"tether"}},
		{"case insensitive", "ETHER", []string{"ethereum", "tether"}},
		{"no match", "doge", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(coins, tt.term)
			ids := make([]string, 0, len(got))
			for _, coin := range got {
				ids = append(ids, coin.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_EmptyTermReturnsSameSlice(t *testing.T) {
	coins := interfaces.JoinFavorites([]interfaces.CoinSummary{bitcoin}, nil)
	got := Filter(coins, "")
	assert.Equal(t, &coins[0], &got[0])
}
