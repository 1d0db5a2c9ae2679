package shared

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes a domain or data-access
// error can belong to. Every error that crosses a layer boundary is
// classified into exactly one kind.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindValidation   ErrorKind = "VALIDATION"
	KindInvalidState ErrorKind = "INVALID_STATE"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindUpstream     ErrorKind = "UPSTREAM"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError by kind and code, so sentinels such as
// ErrNotFound match any not-found error carrying the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not-found error for the named resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(KindNotFound, "NOT_FOUND", resource+" not found")
}

// NewConflictError creates a conflict error with a specific code
func NewConflictError(code, message string) *DomainError {
	return NewDomainError(KindConflict, code, message)
}

// NewValidationError creates a validation error with a specific code
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// NewInvalidStateError creates an error for an illegal state transition
func NewInvalidStateError(message string) *DomainError {
	return NewDomainError(KindInvalidState, "INVALID_STATE", message)
}

// NewUpstreamError wraps a failure of a collaborator (database, gateway,
// storage) so callers can tell it apart from business rule violations.
func NewUpstreamError(message string, cause error) *DomainError {
	return &DomainError{
		Kind:    KindUpstream,
		Code:    "UPSTREAM_ERROR",
		Message: message,
		Cause:   cause,
	}
}

// CodeServiceUnavailable marks an upstream error raised because a
// collaborator is disabled or not configured
const CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

// NewUnavailableError reports that a collaborator is switched off
func NewUnavailableError(message string) *DomainError {
	return NewDomainError(KindUpstream, CodeServiceUnavailable, message)
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrConflict     = NewDomainError(KindConflict, "CONFLICT", "Resource already exists")
	ErrInvalidInput = NewDomainError(KindValidation, "INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError(KindInvalidState, "INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized = NewDomainError(KindUnauthorized, "UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden    = NewDomainError(KindForbidden, "FORBIDDEN", "Access to this resource is forbidden")

	// ErrStaleWrite matches a save rejected because the row changed after it was read
	ErrStaleWrite = NewDomainError(KindConflict, "CONCURRENT_MODIFICATION", "Resource was modified concurrently")
)

// KindOf returns the kind of err, or KindUpstream for unclassified errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUpstream
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}
