package cache

import (
	"context"
	"fmt"
	"time"
)

// Service is the process-local Cache used in front of the key-value store
type Service struct {
	goCache *GoCache
	config  Config
}

// NewService creates a cache service. A disabled service keeps nothing and
// sends every read to the loader.
func NewService(config Config) *Service {
	s := &Service{config: config}
	if config.GoCache.Enabled {
		s.goCache = NewGoCache(config.GoCache.DefaultExpiration(), config.GoCache.CleanupInterval())
	}
	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.config.GoCache.Enabled && s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.Clear()
}

// Get returns cached values and the keys that were not found
func (s *Service) Get(keys []string) (map[string][]byte, []string, error) {
	if s.goCache == nil {
		return map[string][]byte{}, append([]string(nil), keys...), nil
	}
	res := s.goCache.Get(keys)
	return res.Found, res.MissingKeys, nil
}

// Set stores values in the cache
func (s *Service) Set(data map[string][]byte, ttl time.Duration) error {
	if s.goCache == nil || len(data) == 0 {
		return nil
	}
	s.goCache.Set(data, ttl)
	return nil
}

// GetOrLoad returns cached values and fills the gaps from loader
func (s *Service) GetOrLoad(keys []string, loader LoaderFunc, loadOnlyMissingKeys bool, ttl time.Duration) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}

	found, missing, err := s.Get(keys)
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return found, nil
	}

	toLoad := missing
	if !loadOnlyMissingKeys {
		toLoad = keys
	}

	loaded, err := loader(toLoad)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	if err := s.Set(loaded, ttl); err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(keys))
	for k, v := range found {
		result[k] = v
	}
	for _, k := range toLoad {
		if v, ok := loaded[k]; ok {
			result[k] = v
		}
	}
	return result, nil
}

// ServiceStats reports the cache size
type ServiceStats struct {
	Items   int
	Enabled bool
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	stats := ServiceStats{Enabled: s.config.GoCache.Enabled}
	if s.goCache != nil {
		stats.Items = s.goCache.ItemCount()
	}
	return stats
}

// Delete removes items from cache by keys
func (s *Service) Delete(keys []string) {
	if s.goCache != nil {
		s.goCache.Delete(keys)
	}
}

// Clear removes all items from cache
func (s *Service) Clear() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
}
