// Package cache provides the session-scoped stores that keep decoded
// audio and rendered pixel buffers across navigation and resizing.
package cache

import (
	"sync"
)

// Store maps file indices to computed values. Entries appear fully
// formed or not at all; a reader never observes a half-written value.
// There is no eviction beyond Clear — the file list bounds growth.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[int]V
}

// NewStore creates an empty store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{entries: make(map[int]V)}
}

// Get returns the cached value for index, if present.
func (s *Store[V]) Get(index int) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[index]
	return v, ok
}

// GetOrCompute returns the cached value for index, or invokes produce,
// stores its result, and returns it. A failed producer caches nothing,
// so the next call retries. Two concurrent computations for the same
// index both run to completion and the later store wins; values for a
// fixed index are deterministic, so the entries are interchangeable.
func (s *Store[V]) GetOrCompute(index int, produce func() (V, error)) (V, error) {
	s.mu.RLock()
	v, ok := s.entries[index]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := produce()
	if err != nil {
		var zero V
		return zero, err
	}

	s.mu.Lock()
	s.entries[index] = v
	s.mu.Unlock()
	return v, nil
}

// Clear drops every entry.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int]V)
}

// Len returns the number of cached entries.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
