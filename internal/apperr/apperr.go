// Package apperr defines the error taxonomy shared by the service and API
// layers. Every error carries a machine-distinguishable kind and a
// human-readable message; persistence details never leak into messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers.
type Kind string

const (
	// KindValidation marks bad input shape or values. Caller-correctable.
	KindValidation Kind = "validation"

	// KindUnauthenticated marks a missing or invalid identity.
	KindUnauthenticated Kind = "unauthenticated"

	// KindForbidden marks an authenticated caller lacking permission.
	KindForbidden Kind = "forbidden"

	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound Kind = "not_found"

	// KindDependency marks a collaborator failure (persistence, delivery).
	KindDependency Kind = "dependency"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf creates a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticatedf creates an authentication error.
func Unauthenticatedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

// Forbiddenf creates an authorization error.
func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Dependency wraps a collaborator failure behind a stable message.
func Dependency(message string, err error) *Error {
	return &Error{Kind: KindDependency, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindDependency for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// MessageOf returns the user-facing message of err. Unclassified errors map
// to a generic message so internals are never exposed.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
