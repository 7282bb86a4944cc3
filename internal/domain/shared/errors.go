// Package shared contains common domain types, errors, events, and actor
// definitions used across all domain packages. This package has zero
// external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base error kinds. Every lifecycle operation surfaces exactly one of these;
// callers branch on kind with errors.Is, never on message text.
var (
	// ErrValidation indicates malformed or out-of-range input
	// (e.g. an evaluation outside [0.00, 4.00]).
	ErrValidation = errors.New("validation error")

	// ErrPreconditionFailed indicates a legal state with a missing
	// corequisite (e.g. submitting an application without a letter).
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvalidState indicates the operation is not legal from the
	// entity's current status. Concurrent conflicting transitions also
	// surface as this kind: the loser observes the already-updated status.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict indicates a uniqueness violation or a duplicate
	// terminal action.
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates the actor lacks the role or ownership
	// required for the transition.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the entity does not exist.
	ErrNotFound = errors.New("not found")
)

// DomainError carries the context of a failed domain operation.
type DomainError struct {
	Domain  string // e.g. "application", "intern"
	Op      string // operation that failed, e.g. "Submit", "Review"
	Kind    error  // one of the base kinds above, for errors.Is
	Message string // human-readable message
	Err     error  // underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap.
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is matching against the kind and the wrapped error.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message, Err: err}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsPreconditionFailed reports whether err is a precondition failure.
func IsPreconditionFailed(err error) bool { return errors.Is(err, ErrPreconditionFailed) }

// IsInvalidState reports whether err is an invalid-state error.
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsForbidden reports whether err is a forbidden error.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
