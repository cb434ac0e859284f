// Package storage defines the per-entity persistence contract shared by every
// backend. Each entity type exclusively owns its own collection; nothing in
// the contract spans two collections, and no backend offers atomicity across
// two stores.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Entity is any record with a unique opaque id.
type Entity interface {
	EntityID() string
}

// Store is the persistence seam for one entity collection.
//
// Insert, Replace and Delete stage changes in the working set only; Commit
// flushes the working set to the durable medium. Reads reload from the medium
// when no uncommitted writes are pending, so a process always observes its
// own staged writes while other processes see nothing until Commit.
type Store[T Entity] interface {
	// ListAll returns the full collection. An absent medium reads as empty.
	ListAll(ctx context.Context) ([]T, error)
	// GetByID returns the record and whether it exists.
	GetByID(ctx context.Context, id string) (T, bool, error)
	// Insert appends a new record to the working set.
	Insert(ctx context.Context, entity T) error
	// Replace swaps the record sharing the entity's id. It fails with *Error
	// if no such record exists.
	Replace(ctx context.Context, entity T) error
	// Delete removes the record with the given id. It fails with *Error if no
	// such record exists.
	Delete(ctx context.Context, id string) error
	// Commit flushes the working set to the durable medium.
	Commit(ctx context.Context) error
}

// ErrNoSuchRecord marks replace/delete attempts against an absent id.
var ErrNoSuchRecord = errors.New("no record with the given id")

// Error is the failure type every backend raises.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// MissingRecord builds the Error raised when an operation targets an id that
// is not in the collection.
func MissingRecord(op, id string) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrNoSuchRecord, id)}
}
