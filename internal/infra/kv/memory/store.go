// Package memory implements an in-memory kv medium for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"erdash/internal/kv/core"
)

// Store implements core.Medium backed by process memory.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New returns an empty in-memory medium.
func New() *Store { return &Store{entries: make(map[string][]byte)} }

// Driver returns the medium driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Get returns a copy of the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneBytes(v), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	s.mu.Lock()
	s.entries[key] = cloneBytes(value)
	s.mu.Unlock()
	return nil
}

// Delete removes the key returning true if it existed.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return ok, nil
}

// Keys returns all keys matching prefix.
func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.entries))
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Clear drops every entry.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return []byte{}
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
