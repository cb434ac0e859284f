package service

import "fmt"

// ValidationError marks input that fails a field-level rule or an occupancy
// precondition. The caller can recover by supplying corrected input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Msg }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a referenced id that does not exist in its collection.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %q not found", e.Kind, e.ID)
}

// DuplicateError marks a uniqueness rule violation: group name, student
// email, or room number within one dormitory.
type DuplicateError struct {
	Kind string
	Key  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with identifier %q already exists", e.Kind, e.Key)
}

// CapacityError marks a check-in attempt against a room at capacity.
type CapacityError struct {
	Kind    string
	Current int
	Max     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s capacity exceeded: %d/%d", e.Kind, e.Current, e.Max)
}
