package coin_list

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/status-im/coin-tracker/events"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/metrics"
)

// Service synchronizes the coin list: cached data is published first, then
// reconciled with the network. Every publication is signalled to subscribers.
type Service struct {
	remote              interfaces.IRemoteDataService
	persistence         interfaces.IPersistence
	subscriptionManager *events.SubscriptionManager

	mu    sync.RWMutex
	state State
	// generation identifies the latest fetch cycle; older cycles may not publish
	generation uint64
	// favoritesVersion counts toggles so a fetch cannot overwrite a newer favorite set
	favoritesVersion uint64

	fetchOnStart bool
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewService creates the list machine in the idle state
func NewService(remote interfaces.IRemoteDataService, persistence interfaces.IPersistence) *Service {
	return &Service{
		remote:              remote,
		persistence:         persistence,
		subscriptionManager: events.NewSubscriptionManager(),
		state: State{
			Status:    interfaces.SyncStatusIdle,
			Coins:     []interfaces.Coin{},
			Favorites: interfaces.FavoriteIDs{},
		},
		fetchOnStart: true,
	}
}

// SetFetchOnStart controls whether Start triggers the initial fetch
func (s *Service) SetFetchOnStart(enabled bool) {
	s.fetchOnStart = enabled
}

// Start runs the initial fetch in the background
func (s *Service) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	if s.fetchOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.FetchInitialData(ctx)
		}()
	}
	return nil
}

// Stop cancels a background fetch started by Start and waits for it
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Subscribe returns a subscription signalled on every state publication
func (s *Service) Subscribe() events.ISubscription {
	return s.subscriptionManager.Subscribe()
}

// State returns the current snapshot
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// FilteredCoins returns the current coins filtered by the current search term
func (s *Service) FilteredCoins() []interfaces.Coin {
	state := s.State()
	return Filter(state.Coins, state.SearchTerm)
}

// SetSearchTerm changes the search term used by FilteredCoins
func (s *Service) SetSearchTerm(term string) {
	s.mu.Lock()
	s.state.SearchTerm = term
	s.mu.Unlock()
	s.emit()
}

// FetchInitialData runs one fetch cycle and returns the state it published last.
// Cached data is shown while loading; a failure with cached data keeps the
// cached list and sets an advisory message instead of failing.
func (s *Service) FetchInitialData(ctx context.Context) State {
	startTime := time.Now()
	cycleID := uuid.NewString()

	s.mu.Lock()
	s.generation++
	generation := s.generation
	favoritesVersion := s.favoritesVersion
	previous := s.state
	s.mu.Unlock()

	favorites := s.persistence.GetFavoriteIDs(ctx)
	cached, hasCache := s.persistence.GetLastCoinList(ctx)
	hasCache = hasCache && len(cached) > 0

	s.publish(generation, func(state *State) {
		state.Status = interfaces.SyncStatusLoading
		state.Favorites = favorites
		state.Error = ""
		if hasCache {
			state.Coins = interfaces.JoinFavorites(cached, favorites)
		} else {
			state.Coins = []interfaces.Coin{}
		}
	})
	log.Printf("CoinList: cycle %s started (cached coins: %d)", cycleID, len(cached))

	fresh, err := s.remote.FetchCoinMarkets(ctx)
	if interfaces.IsCanceled(err) {
		return s.handleCanceled(generation, cycleID, startTime, previous)
	}
	if err != nil {
		return s.handleFailure(generation, cycleID, startTime, err, cached, favorites, hasCache)
	}

	if !s.isCurrent(generation) {
		return s.discarded(cycleID, startTime)
	}
	s.persistence.SetLastCoinList(ctx, fresh)

	currentFavorites := s.persistence.GetFavoriteIDs(ctx)

	published := s.publish(generation, func(state *State) {
		// A toggle during this cycle is newer than anything read from storage
		if s.favoritesVersion != favoritesVersion {
			currentFavorites = state.Favorites
		}
		state.Status = interfaces.SyncStatusSuccess
		state.Coins = interfaces.JoinFavorites(fresh, currentFavorites)
		state.Favorites = currentFavorites
		state.Error = ""
	})
	if !published {
		return s.discarded(cycleID, startTime)
	}

	metrics.CoinListSizeGauge.Set(float64(len(fresh)))
	metrics.RecordSyncCycle(metrics.MachineList, metrics.OutcomeSuccess, startTime)
	log.Printf("CoinList: cycle %s fetched %d coins", cycleID, len(fresh))
	return s.State()
}

func (s *Service) handleFailure(generation uint64, cycleID string, startTime time.Time, err error,
	cached []interfaces.CoinSummary, favorites interfaces.FavoriteIDs, hasCache bool) State {
	log.Printf("CoinList: cycle %s fetch failed (%s): %v", cycleID, interfaces.ClassifyError(err), err)

	var outcome string
	published := s.publish(generation, func(state *State) {
		if hasCache {
			state.Status = interfaces.SyncStatusSuccess
			state.Coins = interfaces.JoinFavorites(cached, state.Favorites)
			state.Error = advisoryMessage(err)
			outcome = metrics.OutcomeCacheFallback
			return
		}
		state.Status = interfaces.FailureStatus(err)
		state.Coins = []interfaces.Coin{}
		state.Error = interfaces.FailureMessage(err)
		outcome = metrics.OutcomeError
		if state.Status == interfaces.SyncStatusOffline {
			outcome = metrics.OutcomeOffline
		}
	})
	if !published {
		return s.discarded(cycleID, startTime)
	}

	metrics.RecordSyncCycle(metrics.MachineList, outcome, startTime)
	return s.State()
}

// handleCanceled puts back what was published before the cycle started.
// A caller giving up says nothing about the network.
func (s *Service) handleCanceled(generation uint64, cycleID string, startTime time.Time, previous State) State {
	log.Printf("CoinList: cycle %s canceled", cycleID)

	published := s.publish(generation, func(state *State) {
		state.Status = previous.Status
		state.Error = previous.Error
		state.Coins = reflagFavorites(previous.Coins, state.Favorites)
		// The superseded cycle will never finish its loading state
		if state.Status == interfaces.SyncStatusLoading {
			state.Status = interfaces.SyncStatusIdle
		}
	})
	if !published {
		return s.discarded(cycleID, startTime)
	}

	metrics.RecordSyncCycle(metrics.MachineList, metrics.OutcomeCanceled, startTime)
	return s.State()
}

func (s *Service) discarded(cycleID string, startTime time.Time) State {
	log.Printf("CoinList: cycle %s superseded, result discarded", cycleID)
	metrics.RecordSyncCycle(metrics.MachineList, metrics.OutcomeStale, startTime)
	return s.State()
}

// ToggleFavorite flips coinID's membership, updates the joined flags
// immediately and persists the new set in the background. It returns the new
// membership.
func (s *Service) ToggleFavorite(ctx context.Context, coinID string) bool {
	s.mu.Lock()
	favorites, isFavorite := s.state.Favorites.Toggle(coinID)
	s.state.Favorites = favorites
	s.state.Coins = setFavorite(s.state.Coins, coinID, isFavorite)
	s.state.UpdatedAt = time.Now()
	s.favoritesVersion++
	// Non-blocking write-behind, called under the lock so writes keep toggle order
	s.persistence.SetFavoriteIDs(ctx, favorites)
	s.mu.Unlock()

	metrics.RecordFavoriteToggle(isFavorite)
	s.emit()
	return isFavorite
}

func (s *Service) isCurrent(generation uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return generation == s.generation
}

// publish applies update when generation is still the latest cycle
func (s *Service) publish(generation uint64, update func(state *State)) bool {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return false
	}
	update(&s.state)
	s.state.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.emit()
	return true
}

func (s *Service) emit() {
	s.subscriptionManager.Emit(context.Background())
}
