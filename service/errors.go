package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so callers can map it to a transport
// response or retry decision without parsing messages
type ErrorKind string

const (
	// ErrorKindValidation marks malformed or out-of-range input, rejected
	// before any state is touched
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindStateConflict marks an operation against the wrong lifecycle
	// state: innings not ongoing, duplicate innings number, batting position
	// collision, participant already out
	ErrorKindStateConflict ErrorKind = "state_conflict"

	// ErrorKindNotFound marks a referenced match, innings or player that
	// does not exist
	ErrorKindNotFound ErrorKind = "not_found"

	// ErrorKindConcurrencyConflict marks a serialization failure on the
	// per-innings lock; the caller should retry the whole submission
	ErrorKindConcurrencyConflict ErrorKind = "concurrency_conflict"

	// ErrorKindIntegrity marks an internal invariant violated mid-update;
	// the transaction is aborted with no partial state
	ErrorKindIntegrity ErrorKind = "integrity"
)

// DomainError is a classified error with a human-readable message
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error
func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewStateConflictError creates a state conflict error
func NewStateConflictError(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrorKindStateConflict, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrorKindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConcurrencyConflictError wraps a serialization failure
func NewConcurrencyConflictError(message string, err error) *DomainError {
	return &DomainError{Kind: ErrorKindConcurrencyConflict, Message: message, Err: err}
}

// NewIntegrityError wraps an internal invariant violation
func NewIntegrityError(message string, err error) *DomainError {
	return &DomainError{Kind: ErrorKindIntegrity, Message: message, Err: err}
}

// IsKind reports whether err is a DomainError of the given kind anywhere in
// its chain
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind == kind
	}
	return false
}
