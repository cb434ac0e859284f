// Package memory provides a Store backed only by the process working set.
// Commit is a no-op; the backend exists for tests and for the "memory"
// storage backend, where durability is explicitly not wanted.
package memory

import (
	"context"
	"sync"

	"deanery-backend/internal/storage"
)

// Store keeps one entity collection in memory.
type Store[T storage.Entity] struct {
	mu    sync.Mutex
	items []T
}

// New creates an empty in-memory store.
func New[T storage.Entity]() *Store[T] {
	return &Store[T]{}
}

// ListAll returns a copy of the collection.
func (s *Store[T]) ListAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

// GetByID returns the record with the given id, if present.
func (s *Store[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

// Insert appends a record.
func (s *Store[T]) Insert(ctx context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, entity)
	return nil
}

// Replace swaps the record sharing the entity's id.
func (s *Store[T]) Replace(ctx context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.EntityID() == entity.EntityID() {
			s.items[i] = entity
			return nil
		}
	}
	return storage.MissingRecord("replace", entity.EntityID())
}

// Delete removes the record with the given id.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return storage.MissingRecord("delete", id)
}

// Commit does nothing; there is no durable medium behind this backend.
func (s *Store[T]) Commit(ctx context.Context) error { return nil }
