package cache

import (
	"context"
	"sync"
	"time"
)

// KeyStore records one-shot keys with a TTL. Claim returns true only for
// the first caller of a live key; Release frees a key early.
type KeyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
	Close() error
}

// MemoryKeyStore keeps claimed keys in process memory. Claims are not
// shared between instances.
type MemoryKeyStore struct {
	mu        sync.Mutex
	expiresAt map[string]time.Time
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryKeyStore creates an empty in-process key store
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{
		expiresAt: make(map[string]time.Time),
		now:       time.Now,
	}
}

// Claim implements KeyStore
func (s *MemoryKeyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.After(s.nextSweep) {
		for k, exp := range s.expiresAt {
			if !now.Before(exp) {
				delete(s.expiresAt, k)
			}
		}
		s.nextSweep = now.Add(ttl)
	}

	if exp, ok := s.expiresAt[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.expiresAt[key] = now.Add(ttl)
	return true, nil
}

// Release implements KeyStore
func (s *MemoryKeyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expiresAt, key)
	return nil
}

// Len returns the number of tracked keys, expired ones included until the
// next sweep
func (s *MemoryKeyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiresAt)
}

// Close implements KeyStore
func (s *MemoryKeyStore) Close() error { return nil }

var _ KeyStore = (*MemoryKeyStore)(nil)
