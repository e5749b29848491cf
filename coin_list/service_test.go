package coin_list

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/coin-tracker/interfaces"
	mock_interfaces "github.com/status-im/coin-tracker/interfaces/mocks"
)

func ptr(v float64) *float64 { return &v }

var (
	bitcoin  = interfaces.CoinSummary{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 50000, PriceChangePercentage24h: ptr(2.5)}
	ethereum = interfaces.CoinSummary{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3000}
	tether   = interfaces.CoinSummary{ID: "tether", Symbol: "usdt", Name: "Tether", CurrentPrice: 1}
)

func networkError() error {
	return interfaces.NewTransportError(context.DeadlineExceeded)
}

func setup(t *testing.T) (*Service, *mock_interfaces.MockIRemoteDataService, *mock_interfaces.MockIPersistence) {
	ctrl := gomock.NewController(t)
	remote := mock_interfaces.NewMockIRemoteDataService(ctrl)
	persistence := mock_interfaces.NewMockIPersistence(ctrl)
	return NewService(remote, persistence), remote, persistence
}

func TestService_InitialState(t *testing.T) {
	service, _, _ := setup(t)

	state := service.State()
	assert.Equal(t, interfaces.SyncStatusIdle, state.Status)
	assert.Empty(t, state.Coins)
	assert.Empty(t, state.Error)
}

func TestService_ColdStartSuccess(t *testing.T) {
	service, remote, persistence := setup(t)
	ctx := context.Background()

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).Times(2)
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false)
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]interfaces.CoinSummary, error) {
		state := service.State()
		assert.Equal(t, interfaces.SyncStatusLoading, state.Status)
		assert.Empty(t, state.Coins)
		return []interfaces.CoinSummary{bitcoin}, nil
	})
	persistence.EXPECT().SetLastCoinList(gomock.Any(), []interfaces.CoinSummary{bitcoin})

	state := service.FetchInitialData(ctx)

	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
	require.Len(t, state.Coins, 1)
	assert.Equal(t, "bitcoin", state.Coins[0].ID)
	assert.False(t, state.Coins[0].IsFavorite)
	assert.Empty(t, state.Error)
}

func TestService_CachedListPublishedBeforeNetwork(t *testing.T) {
	service, remote, persistence := setup(t)

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{"ethereum"}).Times(2)
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin, ethereum}, true)
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]interfaces.CoinSummary, error) {
		state := service.State()
		assert.Equal(t, interfaces.SyncStatusLoading, state.Status)
		require.Len(t, state.Coins, 2)
		assert.False(t, state.Coins[0].IsFavorite)
		assert.True(t, state.Coins[1].IsFavorite)
		return []interfaces.CoinSummary{tether}, nil
	})
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())

	state := service.FetchInitialData(context.Background())

	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
	require.Len(t, state.Coins, 1)
	assert.Equal(t, "tether", state.Coins[0].ID)
}

func TestService_FailureWithCacheKeepsCachedList(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		advisory string
	}{
		{"network", networkError(), interfaces.AdvisoryOffline},
		{"unauthorized", interfaces.NewStatusError(http.StatusUnauthorized, ""), interfaces.AdvisoryAuthFailed},
		{"rate limited", interfaces.NewStatusError(http.StatusTooManyRequests, ""), interfaces.AdvisoryListStale},
		{"server", interfaces.NewStatusError(http.StatusBadGateway, ""), interfaces.AdvisoryListStale},
		{"unknown", errors.New("boom"), interfaces.AdvisoryListStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, remote, persistence := setup(t)

			persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{"bitcoin"})
			persistence.EXPECT().GetLastCoinList(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin}, true)
			remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return(nil, tt.err)

			state := service.FetchInitialData(context.Background())

			assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
			require.Len(t, state.Coins, 1)
			assert.Equal(t, "bitcoin", state.Coins[0].ID)
			assert.True(t, state.Coins[0].IsFavorite)
			assert.Equal(t, tt.advisory, state.Error)
		})
	}
}

func TestService_FailureWithoutCache(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status interfaces.SyncStatus
	}{
		{"network", networkError(), interfaces.SyncStatusOffline},
		{"unauthorized", interfaces.NewStatusError(http.StatusUnauthorized, ""), interfaces.SyncStatusError},
		{"server", interfaces.NewStatusError(http.StatusInternalServerError, ""), interfaces.SyncStatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, remote, persistence := setup(t)

			persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{})
			persistence.EXPECT().GetLastCoinList(gomock.Any()).Return([]interfaces.CoinSummary{}, true)
			remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return(nil, tt.err)

			state := service.FetchInitialData(context.Background())

			assert.Equal(t, tt.status, state.Status)
			assert.Empty(t, state.Coins)
			assert.Equal(t, interfaces.FailureMessage(tt.err), state.Error)
		})
	}
}

func TestService_FailureAfterSuccessWithoutCacheClearsList(t *testing.T) {
	service, remote, persistence := setup(t)
	ctx := context.Background()

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).AnyTimes()
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false).Times(2)
	gomock.InOrder(
		remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin}, nil),
		remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return(nil, networkError()),
	)
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())

	require.Equal(t, interfaces.SyncStatusSuccess, service.FetchInitialData(ctx).Status)
	state := service.FetchInitialData(ctx)

	assert.Equal(t, interfaces.SyncStatusOffline, state.Status)
	assert.Empty(t, state.Coins)
}

func TestService_ToggleFavorite(t *testing.T) {
	service, remote, persistence := setup(t)
	ctx := context.Background()

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).Times(2)
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false)
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin, ethereum}, nil)
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())
	service.FetchInitialData(ctx)

	persistence.EXPECT().SetFavoriteIDs(gomock.Any(), interfaces.FavoriteIDs{"bitcoin"})
	assert.True(t, service.ToggleFavorite(ctx, "bitcoin"))

	state := service.State()
	assert.Equal(t, interfaces.FavoriteIDs{"bitcoin"}, state.Favorites)
	assert.True(t, state.Coins[0].IsFavorite)
	assert.False(t, state.Coins[1].IsFavorite)

	persistence.EXPECT().SetFavoriteIDs(gomock.Any(), interfaces.FavoriteIDs{})
	assert.False(t, service.ToggleFavorite(ctx, "bitcoin"))

	state = service.State()
	assert.Empty(t, state.Favorites)
	assert.False(t, state.Coins[0].IsFavorite)
}

func TestService_ToggleDoesNotMutatePublishedSnapshot(t *testing.T) {
	service, remote, persistence := setup(t)
	ctx := context.Background()

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).Times(2)
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false)
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin}, nil)
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())
	persistence.EXPECT().SetFavoriteIDs(gomock.Any(), gomock.Any())

	before := service.FetchInitialData(ctx)
	service.ToggleFavorite(ctx, "bitcoin")

	assert.False(t, before.Coins[0].IsFavorite)
	assert.True(t, service.State().Coins[0].IsFavorite)
}

func TestService_ToggleDuringFetchIsKept(t *testing.T) {
	service, remote, persistence := setup(t)
	ctx := context.Background()

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).AnyTimes()
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin}, true)
	persistence.EXPECT().SetFavoriteIDs(gomock.Any(), interfaces.FavoriteIDs{"bitcoin"})
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]interfaces.CoinSummary, error) {
		service.ToggleFavorite(ctx, "bitcoin")
		return []interfaces.CoinSummary{bitcoin}, nil
	})
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())

	state := service.FetchInitialData(ctx)

	assert.Equal(t, interfaces.FavoriteIDs{"bitcoin"}, state.Favorites)
	assert.True(t, state.Coins[0].IsFavorite)
}

func TestService_StaleCycleIsDiscarded(t *testing.T) {
	service, remote, persistence := setup(t)
	ctx := context.Background()

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).AnyTimes()
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false).AnyTimes()
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any()).AnyTimes()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]interfaces.CoinSummary, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []interfaces.CoinSummary{ethereum}, nil
		}
		return []interfaces.CoinSummary{bitcoin}, nil
	}).Times(2)

	done := make(chan State)
	go func() { done <- service.FetchInitialData(ctx) }()
	<-started

	latest := service.FetchInitialData(ctx)
	require.Equal(t, "bitcoin", latest.Coins[0].ID)

	close(release)
	<-done

	state := service.State()
	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
	require.Len(t, state.Coins, 1)
	assert.Equal(t, "bitcoin", state.Coins[0].ID)
}

func TestService_SearchTerm(t *testing.T) {
	service, remote, persistence := setup(t)

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).Times(2)
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false)
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin, ethereum, tether}, nil)
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())
	service.FetchInitialData(context.Background())

	assert.Len(t, service.FilteredCoins(), 3)

	// "Tether" contains "eth" too
	service.SetSearchTerm("ETH")
	assert.Equal(t, []string{"ethereum", "tether"}, ids(service.FilteredCoins()))
	assert.Equal(t, "ETH", service.State().SearchTerm)

	service.SetSearchTerm("ereum")
	assert.Equal(t, []string{"ethereum"}, ids(service.FilteredCoins()))

	service.SetSearchTerm("USDT")
	assert.Equal(t, []string{"tether"}, ids(service.FilteredCoins()))

	service.SetSearchTerm("")
	assert.Len(t, service.FilteredCoins(), 3)
}

func ids(coins []interfaces.Coin) []string {
	result := make([]string, 0, len(coins))
	for _, coin := range coins {
		result = append(result, coin.ID)
	}
	return result
}

func canceledError() error {
	return interfaces.NewTransportError(&url.Error{Op: "Get", URL: "https://api.coingecko.com/api/v3/coins/markets", Err: context.Canceled})
}

func TestService_CanceledFetchIsNotOffline(t *testing.T) {
	t.Run("without cache", func(t *testing.T) {
		service, remote, persistence := setup(t)

		persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{})
		persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false)
		remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return(nil, canceledError())

		state := service.FetchInitialData(context.Background())
		assert.Equal(t, interfaces.SyncStatusIdle, state.Status)
		assert.Empty(t, state.Error)
		assert.Empty(t, state.Coins)
	})

	t.Run("keeps the previously published list", func(t *testing.T) {
		service, remote, persistence := setup(t)
		ctx := context.Background()

		persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).AnyTimes()
		persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false)
		remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin, ethereum}, nil)
		persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())
		require.Equal(t, interfaces.SyncStatusSuccess, service.FetchInitialData(ctx).Status)

		sub := service.Subscribe()
		defer sub.Cancel()

		persistence.EXPECT().GetLastCoinList(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin}, true)
		remote.EXPECT().FetchCoinMarkets(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]interfaces.CoinSummary, error) {
			require.Equal(t, interfaces.SyncStatusLoading, service.State().Status)
			return nil, canceledError()
		})

		state := service.FetchInitialData(ctx)
		assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
		assert.Empty(t, state.Error)
		assert.Equal(t, []string{"bitcoin", "ethereum"}, ids(state.Coins))

		// Subscribers were told about the restored state
		select {
		case <-sub.Chan():
		case <-time.After(time.Second):
			t.Fatal("no publication after cancellation")
		}
	})

	t.Run("real context cancellation", func(t *testing.T) {
		service, remote, persistence := setup(t)
		ctx, cancel := context.WithCancel(context.Background())

		persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{})
		persistence.EXPECT().GetLastCoinList(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin}, true)
		remote.EXPECT().FetchCoinMarkets(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]interfaces.CoinSummary, error) {
			cancel()
			<-ctx.Done()
			return nil, interfaces.NewTransportError(ctx.Err())
		})

		state := service.FetchInitialData(ctx)
		assert.NotEqual(t, interfaces.SyncStatusOffline, state.Status)
		assert.NotEqual(t, interfaces.AdvisoryOffline, state.Error)
		assert.Empty(t, state.Error)
	})
}

func TestService_SubscribersAreSignalled(t *testing.T) {
	service, _, _ := setup(t)

	sub := service.Subscribe()
	defer sub.Cancel()

	service.SetSearchTerm("btc")

	select {
	case <-sub.Chan():
	case <-time.After(time.Second):
		t.Fatal("expected a state signal")
	}
}

func TestService_StartFetchesInBackground(t *testing.T) {
	service, remote, persistence := setup(t)

	persistence.EXPECT().GetFavoriteIDs(gomock.Any()).Return(interfaces.FavoriteIDs{}).Times(2)
	persistence.EXPECT().GetLastCoinList(gomock.Any()).Return(nil, false)
	remote.EXPECT().FetchCoinMarkets(gomock.Any()).Return([]interfaces.CoinSummary{bitcoin}, nil)
	persistence.EXPECT().SetLastCoinList(gomock.Any(), gomock.Any())

	require.NoError(t, service.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return service.State().Status == interfaces.SyncStatusSuccess
	}, time.Second, 10*time.Millisecond)
	service.Stop()
}

func TestService_StartWithoutFetch(t *testing.T) {
	service, _, _ := setup(t)
	service.SetFetchOnStart(false)

	require.NoError(t, service.Start(context.Background()))
	service.Stop()

	assert.Equal(t, interfaces.SyncStatusIdle, service.State().Status)
}
