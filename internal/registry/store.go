package registry

import (
	"sync"
	"time"
)

// Store holds the current registry for the API. The registry itself is
// immutable; refresh builds a fresh one from disk and swaps it in. Readers
// that already hold a registry keep using it for the rest of their request.
type Store struct {
	mu       sync.RWMutex
	reg      *Registry
	loadedAt time.Time
}

// NewStore returns an empty store. Current returns nil until the first
// Replace or Reload, which the API reports as "still loading".
func NewStore() *Store { return &Store{} }

// Current returns the active registry, or nil before the first load.
func (s *Store) Current() *Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg
}

// LoadedAt returns when the active registry was built.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Replace swaps in a new registry.
func (s *Store) Replace(reg *Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg = reg
	s.loadedAt = time.Now()
}

// Reload discards the active registry and rebuilds it from dir. This is the
// explicit invalidate-and-rebuild operation behind the refresh action.
func (s *Store) Reload(dir string) *Registry {
	reg := Load(dir)
	s.Replace(reg)
	return reg
}
