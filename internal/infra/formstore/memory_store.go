package formstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/betterrest/internal/domain/form"
)

type entry struct {
	state     form.State
	expiresAt time.Time
}

// MemoryStore keeps form sessions in process memory. Used for dev and single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements form.Store.
func (s *MemoryStore) Get(_ context.Context, id string) (form.State, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return form.State{}, false, nil
	}
	if s.expired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return form.State{}, false, nil
	}
	return e.state, true, nil
}

// Save stores the session, replacing any previous value; a zero ttl never expires.
func (s *MemoryStore) Save(_ context.Context, state form.State, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[state.ID] = entry{state: state, expiresAt: exp}
	s.sweepLocked()
	return nil
}

// Delete implements form.Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) sweepLocked() {
	for id, e := range s.entries {
		if s.expired(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ form.Store = (*MemoryStore)(nil)
