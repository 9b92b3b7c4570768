package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopease/shopease-backend/pkg/config"
	"github.com/shopease/shopease-backend/pkg/logger"
)

// Manager owns the in-memory session table keyed by session id. Sessions
// are created lazily on first sight and evicted after the idle TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl             time.Duration
	janitorInterval time.Duration
	logg            *logger.Logger
	now             func() time.Time
}

// NewManager builds a session manager from config.
func NewManager(cfg config.SessionConfig, logg *logger.Logger) *Manager {
	return &Manager{
		sessions:        make(map[string]*Session),
		ttl:             cfg.TTL,
		janitorInterval: cfg.JanitorInterval,
		logg:            logg,
		now:             time.Now,
	}
}

// Resolve returns the session for the given id, creating a fresh one when
// the id is blank or unknown. The returned bool reports creation.
func (m *Manager) Resolve(id string) (*Session, bool) {
	if id != "" {
		m.mu.RLock()
		sess, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			sess.touch(m.now())
			return sess, false
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Re-check under the write lock in case a parallel request created it.
	if id != "" {
		if sess, ok := m.sessions[id]; ok {
			sess.touch(m.now())
			return sess, false
		}
	}
	sess := newSession(uuid.NewString(), m.now())
	m.sessions[sess.id] = sess
	return sess, true
}

// Get returns an existing session without creating one.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run evicts idle sessions until the context is canceled.
func (m *Manager) Run(ctx context.Context) {
	interval := m.janitorInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := m.evictIdle(); evicted > 0 && m.logg != nil {
				c := m.logg.WithField(ctx, "evicted", evicted)
				m.logg.Info(c, "session.janitor.evicted")
			}
		}
	}
}

func (m *Manager) evictIdle() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl).UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, sess := range m.sessions {
		if sess.lastActive.Load() < cutoff {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}
