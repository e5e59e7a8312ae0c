// Package store holds the client's transient in-memory habit cache. It is
// an explicit, injectable object so the toggle workflow can be tested
// without any UI wiring; the gateway's persistent store stays the owner of
// the data.
package store

import (
	"sync"

	"github.com/vaneapp/vane/internal/core/domain"
)

type Store struct {
	mu     sync.RWMutex
	order  []string
	habits map[string]*domain.Habit
}

func New() *Store {
	return &Store{
		habits: make(map[string]*domain.Habit),
	}
}

// ReplaceAll swaps the cached habit list, preserving the given order.
func (s *Store) ReplaceAll(habits []*domain.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.habits = make(map[string]*domain.Habit, len(habits))
	for _, h := range habits {
		if _, ok := s.habits[h.ID]; ok {
			continue
		}
		s.order = append(s.order, h.ID)
		s.habits[h.ID] = h.Clone()
	}
}

// Add appends a habit to the cache. An existing id is replaced in place.
func (s *Store) Add(h *domain.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[h.ID]; !ok {
		s.order = append(s.order, h.ID)
	}
	s.habits[h.ID] = h.Clone()
}

// Get returns a copy of the habit, so callers can snapshot pre-toggle state
// without racing later mutations.
func (s *Store) Get(id string) (*domain.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.habits[id]
	if !ok {
		return nil, false
	}
	return h.Clone(), true
}

// List returns copies of all cached habits in insertion order.
func (s *Store) List() []*domain.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Habit, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.habits[id].Clone())
	}
	return out
}

// SetDone flips only the done flag, leaving stats untouched. Returns false
// if the id is not cached.
func (s *Store) SetDone(id string, done bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return false
	}
	h.Done = done
	return true
}

// Apply replaces the cached habit with the given state. Returns false if
// the id is not cached.
func (s *Store) Apply(h *domain.Habit) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[h.ID]; !ok {
		return false
	}
	s.habits[h.ID] = h.Clone()
	return true
}

// Remove drops the habit from the cache.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[id]; !ok {
		return
	}
	delete(s.habits, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.habits)
}
