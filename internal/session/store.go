package session

import (
	"context"
	"sync"
	"time"
)

// Store tracks live sessions so tokens can be revoked before they expire.
// A nil Store means tokens are trusted on signature and expiry alone.
type Store interface {
	Put(ctx context.Context, sessionID, volunteerEmail string, ttl time.Duration) error
	IsLive(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// InMemoryStore is the test and single-process implementation.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

type memorySession struct {
	volunteerEmail string
	expiresAt      time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]memorySession)}
}

func (s *InMemoryStore) Put(_ context.Context, sessionID, volunteerEmail string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memorySession{volunteerEmail: volunteerEmail, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *InMemoryStore) IsLive(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return false, nil
	}
	return time.Now().Before(sess.expiresAt), nil
}

func (s *InMemoryStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
