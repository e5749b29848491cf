package coin_detail

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/status-im/coin-tracker/interfaces"
)

// Manager keeps a bounded set of detail sessions keyed by coin id
type Manager struct {
	remote           interfaces.IRemoteDataService
	persistence      interfaces.IPersistence
	defaultTimeFrame float64

	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
}

// NewManager creates a manager keeping at most maxSessions sessions
func NewManager(remote interfaces.IRemoteDataService, persistence interfaces.IPersistence, defaultTimeFrame float64, maxSessions int) (*Manager, error) {
	if defaultTimeFrame <= 0 {
		return nil, fmt.Errorf("default time frame must be positive, got %v", defaultTimeFrame)
	}
	sessions, err := lru.New[string, *Session](maxSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Manager{
		remote:           remote,
		persistence:      persistence,
		defaultTimeFrame: defaultTimeFrame,
		sessions:         sessions,
	}, nil
}

// Open returns the session for coinID, creating it with the default time frame
func (m *Manager) Open(coinID string) (*Session, error) {
	if coinID == "" {
		return nil, fmt.Errorf("coin id cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions.Get(coinID); ok {
		return session, nil
	}
	session := NewSession(coinID, m.defaultTimeFrame, m.remote, m.persistence)
	m.sessions.Add(coinID, session)
	return session, nil
}

// Get returns an existing session without creating one
func (m *Manager) Get(coinID string) (*Session, bool) {
	return m.sessions.Get(coinID)
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Reset drops every session
func (m *Manager) Reset() {
	m.sessions.Purge()
}
