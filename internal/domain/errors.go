package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by storage. Services translate them into one of the
// typed variants below before they reach the transport layer.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Authentication failures. Their client-facing text is fixed and never echoes
// the submitted credentials.
var (
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrIdentityNotFound   = errors.New("identity not found")
	// ErrEmailNotVerified is the typed form of a "not verified" state conflict.
	ErrEmailNotVerified = &StateConflictError{Message: "Account not verified yet"}
)

// ValidationError reports the first structural violation of an input object.
// Field is the wire name of the offending field; it is empty when the payload
// could not be decoded at all.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// InvalidArgumentError is a semantic precondition failure caused by the caller,
// e.g. a referenced id that does not exist.
type InvalidArgumentError struct {
	Message string
	Cause   error
}

func (e *InvalidArgumentError) Error() string { return e.Message }
func (e *InvalidArgumentError) Unwrap() error { return e.Cause }

// StateConflictError means the request is well-formed but the current state of
// the system does not allow it.
type StateConflictError struct {
	Message string
}

func (e *StateConflictError) Error() string { return e.Message }

// Invalid builds an InvalidArgumentError with a formatted message.
func Invalid(format string, args ...any) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a StateConflictError with a formatted message.
func Conflict(format string, args ...any) error {
	return &StateConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing referenced entity as an invalid argument that
// still matches ErrNotFound.
func NotFound(entity string) error {
	return &InvalidArgumentError{Message: entity + " not found", Cause: ErrNotFound}
}

// Validation builds a ValidationError for field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
