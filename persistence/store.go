package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/status-im/coin-tracker/cache"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/metrics"
	"github.com/status-im/coin-tracker/storage"
)

var _ interfaces.IPersistence = (*Store)(nil)

// Store implements interfaces.IPersistence on top of a key-value substrate.
//
// Reads go through an in-memory cache and fall back to storage. Writes update
// the in-memory cache at once and reach storage through a coalescing
// write-behind queue drained by a background worker. Coin details are tracked
// in a bounded LRU; an evicted id has its stored detail deleted.
type Store struct {
	kv      storage.KV
	l1      cache.Cache
	config  Config
	queue   *writeQueue
	details *lru.Cache[string, struct{}]

	purging   atomic.Bool
	stop      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewStore creates a Store. l1 may be shared with nothing else, Clear wipes it.
func NewStore(kv storage.KV, l1 cache.Cache, config Config) (*Store, error) {
	if config.WriteTimeoutMs <= 0 {
		config.WriteTimeoutMs = DefaultConfig().WriteTimeoutMs
	}

	s := &Store{
		kv:     kv,
		l1:     l1,
		config: config,
		queue:  newWriteQueue(),
		stop:   make(chan struct{}),
	}

	details, err := lru.NewWithEvict[string, struct{}](config.DetailCacheSize, s.onDetailEvicted)
	if err != nil {
		return nil, fmt.Errorf("failed to create detail cache: %w", err)
	}
	s.details = details
	return s, nil
}

// Start implements core.Interface. It loads the ids of stored details into the
// LRU, oldest first, and starts the write-behind worker.
func (s *Store) Start(ctx context.Context) error {
	s.startOnce.Do(func() {
		keys, err := s.kv.Keys(ctx, s.detailKey(""))
		if err != nil {
			log.Printf("Persistence: failed to list cached details: %v", err)
			metrics.RecordPersistenceError("keys", "coinDetail")
		}
		for _, key := range keys {
			s.details.Add(strings.TrimPrefix(key, s.detailKey("")), struct{}{})
		}
		metrics.CachedDetailsGauge.Set(float64(s.details.Len()))
		log.Printf("Persistence: tracking %d cached coin details (limit %d)", s.details.Len(), s.config.DetailCacheSize)

		s.wg.Add(1)
		go s.run()
	})
	return nil
}

// Stop implements core.Interface. Pending writes are flushed before it returns.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()

		ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout())
		defer cancel()
		s.Flush(ctx)
		if n := s.queue.len(); n > 0 {
			log.Printf("Persistence: %d writes lost on shutdown", n)
		}
	})
}

// Flush writes every pending change to storage
func (s *Store) Flush(ctx context.Context) {
	s.queue.flush(ctx, s.kv)
}

// PendingWrites returns the number of keys waiting to be written
func (s *Store) PendingWrites() int {
	return s.queue.len()
}

// DetailIDs returns the ids with a stored detail, least recently used first
func (s *Store) DetailIDs() []string {
	return s.details.Keys()
}

func (s *Store) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stop:
			return
		case <-s.queue.wake:
			ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout())
			s.queue.flush(ctx, s.kv)
			cancel()
		}
	}
}

func (s *Store) key(name string) string {
	return s.config.KeyPrefix + name
}

func (s *Store) detailKey(coinID string) string {
	return s.config.KeyPrefix + keyCoinDetailBase + coinID
}

// GetFavoriteIDs returns the favorite set, empty on first run or failure
func (s *Store) GetFavoriteIDs(ctx context.Context) interfaces.FavoriteIDs {
	var ids interfaces.FavoriteIDs
	if !s.readJSON(ctx, s.key(KeyFavorites), &ids) {
		return interfaces.FavoriteIDs{}
	}
	return ids.Normalize()
}

// SetFavoriteIDs replaces the stored favorite set
func (s *Store) SetFavoriteIDs(ctx context.Context, ids interfaces.FavoriteIDs) {
	if ids == nil {
		ids = interfaces.FavoriteIDs{}
	}
	s.writeJSON(s.key(KeyFavorites), ids)
}

// GetLastCoinList returns the last fetched list
func (s *Store) GetLastCoinList(ctx context.Context) ([]interfaces.CoinSummary, bool) {
	var coins []interfaces.CoinSummary
	if !s.readJSON(ctx, s.key(KeyLastCoinList), &coins) {
		return nil, false
	}
	return coins, true
}

// SetLastCoinList replaces the stored list
func (s *Store) SetLastCoinList(ctx context.Context, coins []interfaces.CoinSummary) {
	if coins == nil {
		coins = []interfaces.CoinSummary{}
	}
	s.writeJSON(s.key(KeyLastCoinList), coins)
}

// GetLastCoinDetail returns the stored detail of coinID and marks it as recently used
func (s *Store) GetLastCoinDetail(ctx context.Context, coinID string) (*interfaces.CoinDetail, bool) {
	if coinID == "" {
		return nil, false
	}
	var detail interfaces.CoinDetail
	if !s.readJSON(ctx, s.detailKey(coinID), &detail) {
		return nil, false
	}
	s.touchDetail(coinID)
	return &detail, true
}

// SetLastCoinDetail stores the detail of coinID, possibly evicting the least recently used one
func (s *Store) SetLastCoinDetail(ctx context.Context, coinID string, detail *interfaces.CoinDetail) {
	if coinID == "" || detail == nil {
		return
	}
	s.writeJSON(s.detailKey(coinID), detail)
	s.touchDetail(coinID)
}

// GetThemeMode returns the stored theme, only light and dark are accepted
func (s *Store) GetThemeMode(ctx context.Context) (interfaces.ThemeMode, bool) {
	raw, ok := s.readRaw(ctx, s.key(KeyThemeMode))
	if !ok {
		return "", false
	}
	mode := interfaces.ThemeMode(raw)
	if !mode.Valid() {
		log.Printf("Persistence: ignoring unknown theme mode %q", raw)
		return "", false
	}
	return mode, true
}

// SetThemeMode stores the theme preference
func (s *Store) SetThemeMode(ctx context.Context, mode interfaces.ThemeMode) {
	if !mode.Valid() {
		return
	}
	s.write(s.key(KeyThemeMode), string(mode))
}

// Clear removes every key under the app prefix, pending writes included
func (s *Store) Clear(ctx context.Context) error {
	s.purging.Store(true)
	s.details.Purge()
	s.purging.Store(false)
	metrics.CachedDetailsGauge.Set(0)

	s.queue.flushMu.Lock()
	defer s.queue.flushMu.Unlock()

	s.queue.reset()
	err := s.kv.Clear(ctx, s.config.KeyPrefix)
	s.l1.Clear()
	if err != nil {
		metrics.RecordPersistenceError("clear", "all")
		return fmt.Errorf("failed to clear local data: %w", err)
	}
	log.Printf("Persistence: cleared local data under %q", s.config.KeyPrefix)
	return nil
}

func (s *Store) touchDetail(coinID string) {
	s.details.Add(coinID, struct{}{})
	metrics.CachedDetailsGauge.Set(float64(s.details.Len()))
}

func (s *Store) onDetailEvicted(coinID string, _ struct{}) {
	if s.purging.Load() {
		return
	}
	s.remove(s.detailKey(coinID))
	metrics.DetailEvictionsTotal.Inc()
	log.Printf("Persistence: evicted cached detail for %s", coinID)
}

// readRaw resolves key from the write-behind queue, then the in-memory cache,
// then storage
func (s *Store) readRaw(ctx context.Context, key string) (string, bool) {
	if w, ok := s.queue.lookup(key); ok {
		return w.value, !w.deleted
	}

	data, err := s.l1.GetOrLoad([]string{key}, func(missing []string) (map[string][]byte, error) {
		loaded := make(map[string][]byte, len(missing))
		for _, k := range missing {
			value, found, err := s.kv.Get(ctx, k)
			if err != nil {
				return nil, err
			}
			if found {
				loaded[k] = []byte(value)
			}
		}
		return loaded, nil
	}, true, 0)
	if err != nil {
		log.Printf("Persistence: failed to read %s: %v", key, err)
		metrics.RecordPersistenceError("get", keyKind(key))
		return "", false
	}

	value, ok := data[key]
	return string(value), ok
}

func (s *Store) readJSON(ctx context.Context, key string, out any) bool {
	raw, ok := s.readRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("Persistence: corrupt value under %s: %v", key, err)
		metrics.RecordPersistenceError("decode", keyKind(key))
		return false
	}
	return true
}

func (s *Store) writeJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Persistence: failed to encode %s: %v", key, err)
		metrics.RecordPersistenceError("encode", keyKind(key))
		return
	}
	s.write(key, string(data))
}

func (s *Store) write(key, value string) {
	if err := s.l1.Set(map[string][]byte{key: []byte(value)}, 0); err != nil {
		log.Printf("Persistence: failed to cache %s: %v", key, err)
	}
	s.queue.put(key, value)
}

func (s *Store) remove(key string) {
	s.l1.Delete([]string{key})
	s.queue.delete(key)
}
