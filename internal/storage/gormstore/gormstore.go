// Package gormstore provides a Store keeping one entity collection in its own
// relational table. Writes stage in the working set; Commit reconciles the
// table against the working set in a single transaction per collection.
// Transactions never span two collections.
package gormstore

import (
	"context"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"deanery-backend/internal/storage"
)

// Store keeps one entity collection in a gorm-managed table.
type Store[T storage.Entity] struct {
	mu    sync.Mutex
	db    *gorm.DB
	items []T
	dirty bool
}

// New creates a store over the given connection. The table must already be
// migrated (see internal/db).
func New[T storage.Entity](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// refresh reloads the working set from the table unless uncommitted writes
// are pending. Callers hold the lock.
func (s *Store[T]) refresh(ctx context.Context) error {
	if s.dirty {
		return nil
	}
	var rows []T
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return &storage.Error{Op: "load", Err: err}
	}
	s.items = rows
	return nil
}

// ListAll returns a copy of the collection.
func (s *Store[T]) ListAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
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
	if err := s.refresh(ctx); err != nil {
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
	if err := s.refresh(ctx); err != nil {
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
	if err := s.refresh(ctx); err != nil {
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
	if err := s.refresh(ctx); err != nil {
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

// Commit reconciles the table against the working set: surviving records are
// batch-upserted, rows no longer present are deleted.
func (s *Store[T]) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	items := make([]T, len(s.items))
	copy(items, s.items)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(items) == 0 {
			return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&items).Error; err != nil {
			return err
		}
		ids := make([]string, len(items))
		for i, item := range items {
			ids[i] = item.EntityID()
		}
		return tx.Where("id NOT IN ?", ids).Delete(new(T)).Error
	})
	if err != nil {
		return &storage.Error{Op: "commit", Err: err}
	}
	s.dirty = false
	return nil
}
