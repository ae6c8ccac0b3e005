package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	// ErrConflict is returned when an insert or rename collides with an existing id or username.
	ErrConflict   = errors.New("profile id or username already exists")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("profile storage unavailable")
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
