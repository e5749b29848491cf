package coin_detail

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/coin-tracker/interfaces"
	mock_interfaces "github.com/status-im/coin-tracker/interfaces/mocks"
)

var (
	ethereumDetail = &interfaces.CoinDetail{
		ID:     "ethereum",
		Name:   "Ethereum",
		Symbol: "eth",
		MarketData: interfaces.MarketData{
			CurrentPrice: interfaces.CurrencyValues{"usd": 3000},
		},
	}
	cachedEthereum = &interfaces.CoinDetail{
		ID:     "ethereum",
		Name:   "Ethereum",
		Symbol: "eth",
		MarketData: interfaces.MarketData{
			CurrentPrice: interfaces.CurrencyValues{"usd": 2500},
		},
	}
	candles = []interfaces.OHLCPoint{
		{Timestamp: 1700000000000, Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{Timestamp: 1700003600000, Open: 1.5, High: 2.5, Low: 1, Close: 2},
	}
)

func setupSession(t *testing.T, coinID string) (*Session, *mock_interfaces.MockIRemoteDataService, *mock_interfaces.MockIPersistence) {
	ctrl := gomock.NewController(t)
	remote := mock_interfaces.NewMockIRemoteDataService(ctrl)
	persistence := mock_interfaces.NewMockIPersistence(ctrl)
	return NewSession(coinID, 7, remote, persistence), remote, persistence
}

func TestSession_InitialState(t *testing.T) {
	session, _, _ := setupSession(t, "ethereum")

	state := session.State()
	assert.Equal(t, "ethereum", state.CoinID)
	assert.Equal(t, interfaces.SyncStatusIdle, state.Status)
	assert.Nil(t, state.Details)
	assert.Empty(t, state.Chart)
	assert.Equal(t, 7.0, session.TimeFrame())
}

func TestSession_FetchSuccess(t *testing.T) {
	session, remote, persistence := setupSession(t, "ethereum")

	persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(nil, false)
	remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(ethereumDetail, nil)
	remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(candles, nil)
	persistence.EXPECT().SetLastCoinDetail(gomock.Any(), "ethereum", ethereumDetail)

	state := session.FetchDetails(context.Background())

	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
	assert.Equal(t, ethereumDetail, state.Details)
	assert.Equal(t, candles, state.Chart)
	assert.True(t, state.HasChart())
	assert.Empty(t, state.Error)
}

func TestSession_CachedDetailPublishedWhileLoading(t *testing.T) {
	session, remote, persistence := setupSession(t, "ethereum")

	persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(cachedEthereum, true)
	remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").DoAndReturn(func(ctx context.Context, id string) (*interfaces.CoinDetail, error) {
		state := session.State()
		assert.Equal(t, interfaces.SyncStatusLoading, state.Status)
		assert.Equal(t, cachedEthereum, state.Details)
		return ethereumDetail, nil
	})
	remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(candles, nil)
	persistence.EXPECT().SetLastCoinDetail(gomock.Any(), "ethereum", ethereumDetail)

	state := session.FetchDetails(context.Background())

	assert.Equal(t, ethereumDetail, state.Details)
}

func TestSession_ChartFailure(t *testing.T) {
	serverError := interfaces.NewStatusError(http.StatusInternalServerError, "")

	t.Run("without cache", func(t *testing.T) {
		session, remote, persistence := setupSession(t, "ethereum")

		persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(nil, false)
		remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(ethereumDetail, nil).AnyTimes()
		remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(nil, serverError)

		state := session.FetchDetails(context.Background())

		assert.Equal(t, interfaces.SyncStatusError, state.Status)
		assert.Nil(t, state.Details)
		assert.Empty(t, state.Chart)
		assert.Equal(t, interfaces.FailureMessage(serverError), state.Error)
	})

	t.Run("with cache", func(t *testing.T) {
		session, remote, persistence := setupSession(t, "ethereum")

		persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(cachedEthereum, true)
		remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(ethereumDetail, nil).AnyTimes()
		remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(nil, serverError)

		state := session.FetchDetails(context.Background())

		assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
		assert.Equal(t, cachedEthereum, state.Details)
		assert.Empty(t, state.Chart)
		assert.Equal(t, interfaces.AdvisoryDetailStale, state.Error)
	})
}

func TestSession_FailureClearsPreviousChart(t *testing.T) {
	session, remote, persistence := setupSession(t, "ethereum")
	ctx := context.Background()

	persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(nil, false)
	remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(ethereumDetail, nil)
	remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(candles, nil)
	persistence.EXPECT().SetLastCoinDetail(gomock.Any(), "ethereum", ethereumDetail)
	require.Len(t, session.FetchDetails(ctx).Chart, 2)

	persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(ethereumDetail, true)
	remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(nil, interfaces.NewTransportError(context.DeadlineExceeded)).AnyTimes()
	remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(candles, nil).AnyTimes()

	state := session.FetchDetails(ctx)

	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
	assert.Equal(t, ethereumDetail, state.Details)
	assert.Empty(t, state.Chart)
	assert.False(t, state.HasChart())
	assert.Equal(t, interfaces.AdvisoryOffline, state.Error)
}

func TestSession_OfflineWithoutCache(t *testing.T) {
	session, remote, persistence := setupSession(t, "bitcoin")

	persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "bitcoin").Return(nil, false)
	remote.EXPECT().FetchCoinDetails(gomock.Any(), "bitcoin").Return(nil, interfaces.NewTransportError(context.DeadlineExceeded)).AnyTimes()
	remote.EXPECT().FetchOHLC(gomock.Any(), "bitcoin", 7.0).Return(nil, interfaces.NewTransportError(context.DeadlineExceeded)).AnyTimes()

	state := session.FetchDetails(context.Background())

	assert.Equal(t, interfaces.SyncStatusOffline, state.Status)
	assert.Nil(t, state.Details)
}

func TestSession_SetTimeFrame(t *testing.T) {
	session, remote, persistence := setupSession(t, "ethereum")
	ctx := context.Background()

	persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(nil, false)
	remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(ethereumDetail, nil)
	remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 1.0/24).Return(candles, nil)
	persistence.EXPECT().SetLastCoinDetail(gomock.Any(), "ethereum", ethereumDetail)

	state, err := session.SetTimeFrame(ctx, 1.0/24)
	require.NoError(t, err)
	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
	assert.Equal(t, 1.0/24, state.TimeFrame)

	// Unchanged time frame does not refetch
	state, err = session.SetTimeFrame(ctx, 1.0/24)
	require.NoError(t, err)
	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)

	_, err = session.SetTimeFrame(ctx, 0)
	assert.Error(t, err)
	assert.Equal(t, 1.0/24, session.TimeFrame())
}

func TestSession_SetTimeFrameRejectsNonFinite(t *testing.T) {
	session, _, _ := setupSession(t, "ethereum")
	ctx := context.Background()

	for _, days := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		state, err := session.SetTimeFrame(ctx, days)
		assert.Error(t, err)
		assert.Equal(t, 7.0, state.TimeFrame)
	}

	// The state must stay encodable
	_, err := json.Marshal(session.State())
	assert.NoError(t, err)
	assert.Equal(t, 7.0, session.TimeFrame())
}

func TestSession_CanceledFetchIsNotOffline(t *testing.T) {
	canceled := interfaces.NewTransportError(&url.Error{Op: "Get", URL: "https://api.coingecko.com/api/v3/coins/ethereum", Err: context.Canceled})

	t.Run("first fetch returns to idle", func(t *testing.T) {
		session, remote, persistence := setupSession(t, "ethereum")

		persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(cachedEthereum, true)
		remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(nil, canceled).AnyTimes()
		remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(nil, canceled).AnyTimes()

		state := session.FetchDetails(context.Background())
		assert.Equal(t, interfaces.SyncStatusIdle, state.Status)
		assert.Empty(t, state.Error)
		assert.Nil(t, state.Details)
	})

	t.Run("keeps the previous detail and chart", func(t *testing.T) {
		session, remote, persistence := setupSession(t, "ethereum")
		ctx := context.Background()

		persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(nil, false)
		remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(ethereumDetail, nil)
		remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).Return(candles, nil)
		persistence.EXPECT().SetLastCoinDetail(gomock.Any(), "ethereum", ethereumDetail)
		require.Equal(t, interfaces.SyncStatusSuccess, session.FetchDetails(ctx).Status)

		cancelCtx, cancel := context.WithCancel(ctx)
		persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(cachedEthereum, true)
		remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").DoAndReturn(func(ctx context.Context, id string) (*interfaces.CoinDetail, error) {
			cancel()
			<-ctx.Done()
			return nil, interfaces.NewTransportError(ctx.Err())
		})
		remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", 7.0).DoAndReturn(func(ctx context.Context, id string, days float64) ([]interfaces.OHLCPoint, error) {
			<-ctx.Done()
			return nil, interfaces.NewTransportError(ctx.Err())
		})

		state := session.FetchDetails(cancelCtx)
		assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
		assert.Empty(t, state.Error)
		assert.Equal(t, ethereumDetail, state.Details)
		assert.Equal(t, candles, state.Chart)
	})
}

func TestSession_EmptyCoinIDIsNoop(t *testing.T) {
	session, _, _ := setupSession(t, "")

	state := session.FetchDetails(context.Background())
	assert.Equal(t, interfaces.SyncStatusIdle, state.Status)
}

func TestSession_StaleCycleIsDiscarded(t *testing.T) {
	session, remote, persistence := setupSession(t, "ethereum")
	ctx := context.Background()

	persistence.EXPECT().GetLastCoinDetail(gomock.Any(), "ethereum").Return(nil, false).AnyTimes()
	persistence.EXPECT().SetLastCoinDetail(gomock.Any(), "ethereum", gomock.Any()).AnyTimes()
	remote.EXPECT().FetchCoinDetails(gomock.Any(), "ethereum").Return(ethereumDetail, nil).AnyTimes()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	remote.EXPECT().FetchOHLC(gomock.Any(), "ethereum", gomock.Any()).DoAndReturn(func(ctx context.Context, id string, days float64) ([]interfaces.OHLCPoint, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return nil, errors.New("late failure")
		}
		return candles, nil
	}).Times(2)

	done := make(chan State)
	go func() { done <- session.FetchDetails(ctx) }()
	<-started

	latest, err := session.SetTimeFrame(ctx, 30)
	require.NoError(t, err)
	require.Equal(t, interfaces.SyncStatusSuccess, latest.Status)

	close(release)
	<-done

	state := session.State()
	assert.Equal(t, interfaces.SyncStatusSuccess, state.Status)
	assert.Equal(t, candles, state.Chart)
	assert.Equal(t, 30.0, state.TimeFrame)
}
