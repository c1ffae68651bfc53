package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pathwise-dev/pathwise/pkg/conversation"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero = no expiry
}

// MemoryStore implements conversation.SessionStore in process memory.
// Like the Redis store it keeps serialized blobs, so callers never share
// a live State pointer with the store. TTLs are honored at read time.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the state stored under sessionID, or
// conversation.ErrSessionNotFound when absent or past its TTL.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*conversation.State, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, conversation.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, conversation.ErrSessionNotFound
	}

	var state conversation.State
	if err := json.Unmarshal(entry.data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &state, nil
}

// Put stores state under sessionID with the given TTL (0 = no expiry).
func (s *MemoryStore) Put(_ context.Context, sessionID string, state *conversation.State, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[sessionID] = entry
	s.mu.Unlock()
	return nil
}

// Len reports how many sessions are held, including not-yet-evicted
// expired ones.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
