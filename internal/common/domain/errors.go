package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors so transport layers can map them to
// status codes without inspecting messages.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindForbidden    ErrorKind = "forbidden"
	KindInvalidState ErrorKind = "invalid_state"
	KindInternal     ErrorKind = "internal"
)

// DomainError is the shared error type for all business-rule failures.
type DomainError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// NewValidationError reports malformed or missing input, rejected before I/O.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports a missing entity by type and identifier.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

// NewConflictError reports a state conflict (double booking, lock timeout,
// concurrent modification). Never retried automatically.
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// NewForbiddenError reports an operation the actor may not perform.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

// NewInvalidStateError reports an illegal lifecycle transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewInternalError wraps a persistence or infrastructure failure. The
// transaction it occurred in has been rolled back and the caller may retry.
func NewInternalError(message string, cause error) *DomainError {
	return &DomainError{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the ErrorKind from err, or KindInternal for unknown errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsConflict reports whether err is a conflict or invalid-state error.
func IsConflict(err error) bool {
	k := KindOf(err)
	return k == KindConflict || k == KindInvalidState
}
