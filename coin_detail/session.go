package coin_detail

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/status-im/coin-tracker/events"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/metrics"
)

// State is an immutable snapshot of one coin's detail machine
type State struct {
	CoinID    string                 `json:"coin_id"`
	Status    interfaces.SyncStatus  `json:"status"`
	Details   *interfaces.CoinDetail `json:"details"`
	Chart     []interfaces.OHLCPoint `json:"chart"`
	TimeFrame float64                `json:"time_frame"`
	Error     string                 `json:"error,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// HasChart reports whether there are enough points to draw a chart
func (s State) HasChart() bool {
	return len(s.Chart) >= 2
}

// Session synchronizes the detail and chart of a single coin
type Session struct {
	coinID              string
	remote              interfaces.IRemoteDataService
	persistence         interfaces.IPersistence
	subscriptionManager *events.SubscriptionManager

	mu         sync.RWMutex
	state      State
	generation uint64
}

// NewSession creates an idle session for coinID
func NewSession(coinID string, timeFrame float64, remote interfaces.IRemoteDataService, persistence interfaces.IPersistence) *Session {
	return &Session{
		coinID:              coinID,
		remote:              remote,
		persistence:         persistence,
		subscriptionManager: events.NewSubscriptionManager(),
		state: State{
			CoinID:    coinID,
			Status:    interfaces.SyncStatusIdle,
			Chart:     []interfaces.OHLCPoint{},
			TimeFrame: timeFrame,
		},
	}
}

// CoinID returns the coin this session tracks
func (s *Session) CoinID() string {
	return s.coinID
}

// State returns the current snapshot
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// TimeFrame returns the selected chart range in days
func (s *Session) TimeFrame() float64 {
	return s.State().TimeFrame
}

// Subscribe returns a subscription signalled on every state publication
func (s *Session) Subscribe() events.ISubscription {
	return s.subscriptionManager.Subscribe()
}

// SetTimeFrame selects a chart range and refetches when it changed
func (s *Session) SetTimeFrame(ctx context.Context, days float64) (State, error) {
	if !validDays(days) {
		return s.State(), fmt.Errorf("time frame must be a positive finite number, got %v", days)
	}

	s.mu.Lock()
	changed := s.state.TimeFrame != days
	s.state.TimeFrame = days
	s.mu.Unlock()

	if !changed {
		return s.State(), nil
	}
	return s.FetchDetails(ctx), nil
}

// FetchDetails runs one fetch cycle for the selected time frame and returns
// the state it published last. Detail and chart are fetched concurrently and
// both must succeed. The chart is never served from cache.
func (s *Session) FetchDetails(ctx context.Context) State {
	if s.coinID == "" {
		return s.State()
	}

	startTime := time.Now()
	cycleID := uuid.NewString()

	s.mu.Lock()
	s.generation++
	generation := s.generation
	timeFrame := s.state.TimeFrame
	previous := s.state
	s.mu.Unlock()

	cached, hasCache := s.persistence.GetLastCoinDetail(ctx, s.coinID)

	s.publish(generation, func(state *State) {
		state.Status = interfaces.SyncStatusLoading
		state.Error = ""
		if hasCache {
			state.Details = cached
		}
	})
	log.Printf("CoinDetail: cycle %s started for %s (%s, cached: %t)", cycleID, s.coinID, LabelForDays(timeFrame), hasCache)

	var (
		detail *interfaces.CoinDetail
		chart  []interfaces.OHLCPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = s.remote.FetchCoinDetails(gctx, s.coinID)
		return err
	})
	g.Go(func() error {
		var err error
		chart, err = s.remote.FetchOHLC(gctx, s.coinID, timeFrame)
		return err
	})

	err := g.Wait()
	if interfaces.IsCanceled(err) {
		return s.handleCanceled(generation, cycleID, startTime, previous)
	}
	if err != nil {
		return s.handleFailure(generation, cycleID, startTime, err, cached, hasCache)
	}

	if !s.isCurrent(generation) {
		return s.discarded(cycleID, startTime)
	}
	s.persistence.SetLastCoinDetail(ctx, s.coinID, detail)

	if chart == nil {
		chart = []interfaces.OHLCPoint{}
	}
	published := s.publish(generation, func(state *State) {
		state.Status = interfaces.SyncStatusSuccess
		state.Details = detail
		state.Chart = chart
		state.Error = ""
	})
	if !published {
		return s.discarded(cycleID, startTime)
	}

	metrics.RecordSyncCycle(metrics.MachineDetail, metrics.OutcomeSuccess, startTime)
	log.Printf("CoinDetail: cycle %s fetched %s with %d candles", cycleID, s.coinID, len(chart))
	return s.State()
}

func (s *Session) handleFailure(generation uint64, cycleID string, startTime time.Time, err error,
	cached *interfaces.CoinDetail, hasCache bool) State {
	log.Printf("CoinDetail: cycle %s for %s failed (%s): %v", cycleID, s.coinID, interfaces.ClassifyError(err), err)

	var outcome string
	published := s.publish(generation, func(state *State) {
		state.Chart = []interfaces.OHLCPoint{}
		if hasCache {
			state.Status = interfaces.SyncStatusSuccess
			state.Details = cached
			state.Error = advisoryMessage(err)
			outcome = metrics.OutcomeCacheFallback
			return
		}
		state.Status = interfaces.FailureStatus(err)
		state.Details = nil
		state.Error = interfaces.FailureMessage(err)
		outcome = metrics.OutcomeError
		if state.Status == interfaces.SyncStatusOffline {
			outcome = metrics.OutcomeOffline
		}
	})
	if !published {
		return s.discarded(cycleID, startTime)
	}

	metrics.RecordSyncCycle(metrics.MachineDetail, outcome, startTime)
	return s.State()
}

// handleCanceled restores the state published before the cycle started
func (s *Session) handleCanceled(generation uint64, cycleID string, startTime time.Time, previous State) State {
	log.Printf("CoinDetail: cycle %s for %s canceled", cycleID, s.coinID)

	published := s.publish(generation, func(state *State) {
		state.Status = previous.Status
		state.Details = previous.Details
		state.Chart = previous.Chart
		state.Error = previous.Error
		if state.Status == interfaces.SyncStatusLoading {
			state.Status = interfaces.SyncStatusIdle
		}
	})
	if !published {
		return s.discarded(cycleID, startTime)
	}

	metrics.RecordSyncCycle(metrics.MachineDetail, metrics.OutcomeCanceled, startTime)
	return s.State()
}

func (s *Session) discarded(cycleID string, startTime time.Time) State {
	log.Printf("CoinDetail: cycle %s for %s superseded, result discarded", cycleID, s.coinID)
	metrics.RecordSyncCycle(metrics.MachineDetail, metrics.OutcomeStale, startTime)
	return s.State()
}

func (s *Session) isCurrent(generation uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return generation == s.generation
}

func (s *Session) publish(generation uint64, update func(state *State)) bool {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return false
	}
	update(&s.state)
	s.state.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.subscriptionManager.Emit(context.Background())
	return true
}

func advisoryMessage(err error) string {
	if interfaces.ClassifyError(err) == interfaces.ErrorKindNetwork {
		return interfaces.AdvisoryOffline
	}
	return interfaces.AdvisoryDetailStale
}
