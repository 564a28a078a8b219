package cache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
)

// MemoryStore is an in-process Store for tests/dev.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	obs       outfit.Observation
	expiresAt time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns a live entry.
func (s *MemoryStore) Get(_ context.Context, key string) (outfit.Observation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return outfit.Observation{}, false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return outfit.Observation{}, false, nil
	}
	return entry.obs, true, nil
}

// Set stores obs until ttl elapses.
func (s *MemoryStore) Set(_ context.Context, key string, obs outfit.Observation, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{obs: obs, expiresAt: s.now().Add(ttl)}
	return nil
}

var _ Store = (*MemoryStore)(nil)
