// Package jsonfile provides a Store persisting one entity collection as a
// single JSON file, serialized whole on every Commit.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"deanery-backend/internal/storage"
)

// Store keeps one entity collection in a JSON file under the data directory.
type Store[T storage.Entity] struct {
	mu    sync.Mutex
	path  string
	items []T
	dirty bool
}

// New creates a store backed by dataDir/fileName, creating the data directory
// if needed. A missing file reads as an empty collection.
func New[T storage.Entity](dataDir, fileName string) (*Store[T], error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, &storage.Error{Op: "init", Err: fmt.Errorf("create data directory: %w", err)}
	}
	return &Store[T]{path: filepath.Join(dataDir, fileName)}, nil
}

// load replaces the working set with the file contents. Callers hold the lock.
func (s *Store[T]) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.items = nil
			return nil
		}
		return &storage.Error{Op: "load", Err: err}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return &storage.Error{Op: "load", Err: fmt.Errorf("decode %s: %w", s.path, err)}
	}
	s.items = items
	return nil
}

// refresh reloads from the file unless uncommitted writes are pending.
// Callers hold the lock.
func (s *Store[T]) refresh() error {
	if s.dirty {
		return nil
	}
	return s.load()
}

// ListAll returns a copy of the collection.
func (s *Store[T]) ListAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(); err != nil {
		return nil, err
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

// GetByID returns the record with the given id, if present.
func (s *Store[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(); err != nil {
		return zero, false, err
	}
	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Insert appends a record to the working set.
func (s *Store[T]) Insert(ctx context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(); err != nil {
		return err
	}
	s.items = append(s.items, entity)
	s.dirty = true
	return nil
}

// Replace swaps the record sharing the entity's id in the working set.
func (s *Store[T]) Replace(ctx context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(); err != nil {
		return err
	}
	for i, item := range s.items {
		if item.EntityID() == entity.EntityID() {
			s.items[i] = entity
			s.dirty = true
			return nil
		}
	}
	return storage.MissingRecord("replace", entity.EntityID())
}

// Delete removes the record with the given id from the working set.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(); err != nil {
		return err
	}
	for i, item := range s.items {
		if item.EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.dirty = true
			return nil
		}
	}
	return storage.MissingRecord("delete", id)
}

// Commit writes the working set to the file. A store with no uncommitted
// writes has nothing to flush.
func (s *Store[T]) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return &storage.Error{Op: "commit", Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &storage.Error{Op: "commit", Err: err}
	}
	s.dirty = false
	return nil
}
