// Package kv provides the key/value store shared by the plugins of one orchestrator.
package kv

import (
	"sort"
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Store is a concurrency safe string keyed store.
type Store struct {
	m cmap.ConcurrentMap[string, any]
}

// New creates an empty Store.
func New() *Store {
	return &Store{m: cmap.New[any]()}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, bool) {
	return s.m.Get(key)
}

// Set stores value under key. A nil value removes the key.
func (s *Store) Set(key string, value any) {
	if value == nil {
		s.m.Remove(key)
		return
	}
	s.m.Set(key, value)
}

// Delete removes key.
func (s *Store) Delete(key string) {
	s.m.Remove(key)
}

// DeletePrefix removes every key starting with prefix and returns how many were removed.
func (s *Store) DeletePrefix(prefix string) int {
	removed := 0
	for _, key := range s.m.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if s.m.RemoveCb(key, func(_ string, _ any, exists bool) bool { return exists }) {
			removed++
		}
	}
	return removed
}

// Keys returns the sorted keys starting with prefix. An empty prefix matches every key.
func (s *Store) Keys(prefix string) []string {
	keys := make([]string, 0)
	for _, key := range s.m.Keys() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return s.m.Count()
}
