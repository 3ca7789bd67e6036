// Package store holds decompiled source text keyed by qualified class name.
// It is the single source of truth for tree building, display, and export.
package store

import (
	"sort"
	"sync"
)

// Store is an in-memory map from qualified class name (slash-separated,
// e.g. "com/acme/Server") to decompiled source text.
// It is safe for concurrent use: the decompile worker writes entries while
// the UI goroutine reads them.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[string]string),
	}
}

// Put stores text under name, overwriting any previous entry.
func (s *Store) Put(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = text
}

// Get returns the text stored under name.
// The second return value reports whether the entry exists.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.entries[name]
	return text, ok
}

// Clear drops all entries. Called before a new archive replaces the
// current one.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
}

// Names returns all stored qualified names in sorted order.
// The sorted order gives tree construction and export a stable iteration
// order across runs.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
