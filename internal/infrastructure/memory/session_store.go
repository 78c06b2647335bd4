// Package memory provides in-process implementations of the storage ports,
// used when the service runs without Mongo and Redis and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/saintdavies/property-console/internal/core/domain"
)

type slot struct {
	value   []byte
	expires time.Time
}

func (s slot) expired(now time.Time) bool {
	return !s.expires.IsZero() && !now.Before(s.expires)
}

// SessionStore keeps session slots in a map. With a TTL, a slot expires that
// long after its last Set, matching the Redis store.
type SessionStore struct {
	mu    sync.RWMutex
	slots map[string]slot
	ttl   time.Duration
	now   func() time.Time
}

type SessionOption func(*SessionStore)

// WithTTL expires slots ttl after they are written. Zero keeps them until
// deleted.
func WithTTL(ttl time.Duration) SessionOption {
	return func(s *SessionStore) { s.ttl = ttl }
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

func NewSessionStore(opts ...SessionOption) *SessionStore {
	s := &SessionStore{slots: make(map[string]slot), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	v, ok := s.slots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if v.expired(s.now()) {
		s.mu.Lock()
		if cur, ok := s.slots[key]; ok && cur.expired(s.now()) {
			delete(s.slots, key)
		}
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return append([]byte(nil), v.value...), nil
}

// Set also drops every slot that has already expired.
func (s *SessionStore) Set(_ context.Context, key string, value []byte) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)

	v := slot{value: append([]byte(nil), value...)}
	if s.ttl > 0 {
		v.expires = now.Add(s.ttl)
	}
	s.slots[key] = v
	return nil
}

func (s *SessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

// Len reports how many live slots are held.
func (s *SessionStore) Len() int {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.slots {
		if !v.expired(now) {
			n++
		}
	}
	return n
}

func (s *SessionStore) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for k, v := range s.slots {
		if v.expired(now) {
			delete(s.slots, k)
		}
	}
}
