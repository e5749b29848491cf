package events

import (
	"context"
	"sync"
)

// ISubscription is a handle to state-change notifications
type ISubscription interface {
	// Chan delivers one signal per burst of changes
	Chan() <-chan struct{}
	// Cancel unsubscribes and closes the channel, safe to call more than once
	Cancel()
	// Watch calls cb for every signal until parentCtx is done or Cancel is called.
	// With callNow cb runs once before Watch returns.
	Watch(parentCtx context.Context, cb func(), callNow bool) ISubscription
}

// ISubscriptionManager fans state-change signals out to subscribers
type ISubscriptionManager interface {
	Subscribe() ISubscription
	Unsubscribe(ch chan struct{})
	// Emit signals every subscriber without blocking
	Emit(ctx context.Context)
	// Count returns the number of live subscriptions
	Count() int
}

// Subscription is returned by SubscriptionManager.Subscribe
type Subscription struct {
	ch     chan struct{}
	mgr    *SubscriptionManager
	mu     sync.Mutex
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns the notification channel
func (s *Subscription) Chan() <-chan struct{} { return s.ch }

// Cancel stops the watcher, if any, and unsubscribes
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch runs cb on a goroutine for every signal
func (s *Subscription) Watch(parentCtx context.Context, cb func(), callNow bool) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	if callNow {
		cb()
	}

	go func() {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-s.ch:
				if !ok {
					return
				}
				cb()
			}
		}
	}()

	return s
}

// SubscriptionManager keeps one buffered channel per subscriber. A subscriber
// that has not drained its previous signal does not get a second one, so
// bursts of publications collapse into a single wake-up.
type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan struct{}]struct{}
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

func (m *SubscriptionManager) Subscribe() ISubscription {
	ch := make(chan struct{}, 1)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) Unsubscribe(ch chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
}

func (m *SubscriptionManager) Emit(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			return
		case sub <- struct{}{}:
		default:
		}
	}
}

func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}
