package storage

import "sync"

// MemoryStore is an in-memory implementation of Store. It backs the
// "memory" storage driver and the test suites.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	subs    subscribers
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]string),
	}
}

// Get retrieves a value by key; the second return reports presence.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

// Set stores a key/value pair and notifies subscribers.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
	s.subs.notify(key)
	return nil
}

// Delete removes a key and notifies subscribers.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	s.subs.notify(key)
	return nil
}

// Subscribe registers an observer for writes; the returned func removes it.
func (s *MemoryStore) Subscribe(fn func(key string)) func() {
	return s.subs.add(fn)
}
