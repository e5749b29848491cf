package theme

import (
	"context"
	"log"
	"sync"

	"github.com/status-im/coin-tracker/events"
	"github.com/status-im/coin-tracker/interfaces"
)

// DefaultMode is used until a stored preference is loaded, and when none exists
const DefaultMode = interfaces.ThemeModeDark

// Service holds the theme preference. Consumers wait on Ready before the
// first render; it is closed exactly once, after the stored mode is loaded.
type Service struct {
	persistence         interfaces.IPersistence
	subscriptionManager *events.SubscriptionManager

	mu        sync.RWMutex
	mode      interfaces.ThemeMode
	ready     chan struct{}
	readyOnce sync.Once
}

// NewService creates a theme service that is not ready yet
func NewService(persistence interfaces.IPersistence) *Service {
	return &Service{
		persistence:         persistence,
		subscriptionManager: events.NewSubscriptionManager(),
		mode:                DefaultMode,
		ready:               make(chan struct{}),
	}
}

// Start loads the stored mode and opens the readiness barrier
func (s *Service) Start(ctx context.Context) error {
	s.Load(ctx)
	return nil
}

func (s *Service) Stop() {}

// Load reads the stored preference. Only the first call has any effect.
func (s *Service) Load(ctx context.Context) {
	s.readyOnce.Do(func() {
		if mode, ok := s.persistence.GetThemeMode(ctx); ok {
			s.mu.Lock()
			s.mode = mode
			s.mu.Unlock()
		}
		log.Printf("Theme: loaded mode %s", s.Mode())
		close(s.ready)
		s.subscriptionManager.Emit(ctx)
	})
}

// Ready is closed once the stored mode has been loaded
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// IsReady reports whether Ready has been closed
func (s *Service) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// WaitReady blocks until the service is ready or ctx is done
func (s *Service) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Mode returns the current theme mode
func (s *Service) Mode() interfaces.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode stores mode and persists it in the background
func (s *Service) SetMode(ctx context.Context, mode interfaces.ThemeMode) bool {
	if !mode.Valid() {
		return false
	}
	s.mu.Lock()
	s.mode = mode
	s.persistence.SetThemeMode(ctx, mode)
	s.mu.Unlock()

	s.subscriptionManager.Emit(ctx)
	return true
}

// Toggle switches between light and dark and returns the new mode
func (s *Service) Toggle(ctx context.Context) interfaces.ThemeMode {
	s.mu.Lock()
	s.mode = s.mode.Toggled()
	mode := s.mode
	s.persistence.SetThemeMode(ctx, mode)
	s.mu.Unlock()

	log.Printf("Theme: switched to %s", mode)
	s.subscriptionManager.Emit(ctx)
	return mode
}

// Subscribe returns a subscription signalled when the mode changes
func (s *Service) Subscribe() events.ISubscription {
	return s.subscriptionManager.Subscribe()
}
