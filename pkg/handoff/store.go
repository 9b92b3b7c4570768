package handoff

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgredis "github.com/shopease/shopease-backend/pkg/redis"
)

// Store is the single key-value slot the catalog screen writes a checkout
// snapshot into and the checkout screen reads and deletes. One slot per
// session.
type Store interface {
	Put(ctx context.Context, sessionID, payload string) error
	// Get returns the stored payload, reporting false when the slot is empty.
	Get(ctx context.Context, sessionID string) (string, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps handoff slots in Redis under namespaced keys.
type RedisStore struct {
	client *pkgredis.Client
	ttl    time.Duration
}

func NewRedisStore(client *pkgredis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID, payload string) error {
	return s.client.Set(ctx, s.client.HandoffKey(sessionID), payload, s.ttl)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.client.HandoffKey(sessionID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.HandoffKey(sessionID))
}

// MemoryStore is the in-process fallback used when Redis is not configured,
// and by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (s *MemoryStore) Put(_ context.Context, sessionID, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[sessionID] = payload
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.slots[sessionID]
	return payload, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, sessionID)
	return nil
}
