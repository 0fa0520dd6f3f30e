// Package store provides the in-memory, mutex-guarded entity stores. Each
// store is the single source of truth for its entity type: queries return
// snapshot copies, and read-modify-write sequences go through Update so the
// whole span runs under one critical section.
package store

import (
	"fmt"
	"sync"

	"github.com/yourorg/projectdesk/internal/domain"
)

// Entity is anything a Store can hold: identifiable and snapshot-copyable.
type Entity[T any] interface {
	EntityID() string
	Clone() T
}

// Store is a generic keyed in-memory store. Insertion order is preserved
// for FindAll.
type Store[T Entity[T]] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New constructs an empty store.
func New[T Entity[T]]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Save upserts the entity keyed by id, last write wins. The store keeps its
// own copy, so later caller-side mutation has no effect.
func (s *Store[T]) Save(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := e.EntityID()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = e.Clone()
}

// FindByID returns a snapshot of the entity, if present.
func (s *Store[T]) FindByID(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return e.Clone(), true
}

// FindAll returns snapshots of every entity in insertion order.
func (s *Store[T]) FindAll() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

// Find returns snapshots of entities matching the predicate, in insertion
// order. The predicate sees the live record and must not mutate or retain it.
func (s *Store[T]) Find(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.order {
		if pred(s.items[id]) {
			out = append(out, s.items[id].Clone())
		}
	}
	return out
}

// FindFirst returns a snapshot of the first entity matching the predicate.
func (s *Store[T]) FindFirst(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if pred(s.items[id]) {
			return s.items[id].Clone(), true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of stored entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Delete removes the entity if present, no-op otherwise.
func (s *Store[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Update runs a fetch-mutate-persist sequence atomically under the store's
// write lock. fn receives a snapshot; the returned entity is persisted only
// when fn succeeds. Returns ErrNotFound when the id is absent.
func (s *Store[T]) Update(id string, fn func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	updated, err := fn(e.Clone())
	if err != nil {
		return err
	}
	s.items[id] = updated.Clone()
	return nil
}
