package custom_error

import (
	"fmt"
	"strings"
)

// ValidationError: a required field is missing or malformed.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{message: fmt.Sprintf(format, args...)}
}

// NotFoundError: a referenced id does not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// DuplicateIDError: id collision on create.
type DuplicateIDError struct {
	Resource string
	ID       string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.ID)
}

// InvalidStateError: operation preconditions violated. Items carries
// the names of the offending items for batch operations.
type InvalidStateError struct {
	Message string
	Items   []string
}

func (e *InvalidStateError) Error() string {
	if len(e.Items) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Items, ", ")
}

// InvalidDestinationError: a transfer target does not resolve.
type InvalidDestinationError struct {
	Message string
}

func (e *InvalidDestinationError) Error() string {
	return e.Message
}

// StorageError: the persistence hook failed. The in-memory mutation it
// followed is not rolled back; in-memory state stays authoritative for
// the session.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("document %q not persisted: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
