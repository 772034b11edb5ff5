package engine

import (
	"slices"
	"sync"

	"github.com/lixenwraith/vi-scene/core"
)

// Store maps entity ids to values and remembers insertion order
type Store[T any] struct {
	mu     sync.RWMutex
	values map[core.Entity]T
	order  []core.Entity
}

// NewStore creates an empty store
func NewStore[T any]() *Store[T] {
	return &Store[T]{values: make(map[core.Entity]T)}
}

// Set stores val for e; a new id is appended to the order, an existing one keeps its place
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[e]; !ok {
		s.order = append(s.order, e)
	}
	s.values[e] = val
}

func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[e]
	return val, ok
}

// Remove deletes e, preserving the order of the rest
func (s *Store[T]) Remove(e core.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[e]; !ok {
		return false
	}
	delete(s.values, e)
	if i := slices.Index(s.order, e); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// Values returns a snapshot of the stored values in insertion order
func (s *Store[T]) Values() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, e := range s.order {
		out = append(out, s.values[e])
	}
	return out
}

func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear drops every value
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
	s.order = s.order[:0]
}
