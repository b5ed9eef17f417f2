package ratestore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/exchanger/internal/domain/currency"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
	seq       uint64
}

// MemoryStore is a bounded in-process cache used when Valkey is not configured.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	seq        uint64
	now        func() time.Time
}

// NewMemoryStore constructs a store holding at most maxEntries keys.
// A non-positive maxEntries disables the bound.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get implements currency.Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.expired(e) {
		delete(s.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, true, nil
}

// Set stores payload with an optional TTL.
func (s *MemoryStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictLocked()
	}
	s.seq++
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.entries[key] = entry{payload: stored, expiresAt: exp, seq: s.seq}
	return nil
}

// Delete removes key if present.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Len reports the number of live and expired-but-unpurged entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictLocked purges expired entries, then the oldest write if still full.
func (s *MemoryStore) evictLocked() {
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
		}
	}
	if len(s.entries) < s.maxEntries {
		return
	}
	var (
		oldestKey string
		oldestSeq uint64
	)
	for key, e := range s.entries {
		if oldestKey == "" || e.seq < oldestSeq {
			oldestKey, oldestSeq = key, e.seq
		}
	}
	delete(s.entries, oldestKey)
}

func (s *MemoryStore) expired(e entry) bool {
	if e.expiresAt.IsZero() {
		return false
	}
	return !e.expiresAt.After(s.now())
}

var _ currency.Store = (*MemoryStore)(nil)
