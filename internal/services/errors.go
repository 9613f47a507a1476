package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed input. Nothing was written.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a required single-row fetch that matched no rows.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks a failed object store operation.
	ErrStorage = errors.New("storage error")
	// ErrPersistence marks a failed row store operation.
	ErrPersistence = errors.New("persistence error")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
