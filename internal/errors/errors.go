package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for translation into an HTTP status.
type Kind string

const (
	KindInvalidInput     Kind = "InvalidInput"
	KindUnauthenticated  Kind = "Unauthenticated"
	KindForbidden        Kind = "Forbidden"
	KindMethodNotAllowed Kind = "MethodNotAllowed"
	KindNotFound         Kind = "NotFound"
	KindInternal         Kind = "Internal"
)

// Error is a failure raised by a controller or service. Message is the only
// part that may reach a client; Cause is kept for logs and errors.Is/As.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Cause != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Message
	}
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. A target with an
// empty message matches every error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and a client-safe message to cause
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// InvalidInput reports missing or malformed input.
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

// InvalidInputf is InvalidInput with formatting.
func InvalidInputf(format string, args ...any) *Error {
	return New(KindInvalidInput, fmt.Sprintf(format, args...))
}

// Unauthenticated reports a missing or invalid credential.
func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

// Forbidden reports an authenticated caller acting on a resource it does not own.
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// MethodNotAllowed reports a known path used with an unsupported method.
func MethodNotAllowed(message string) *Error {
	return New(KindMethodNotAllowed, message)
}

// NotFound reports a missing resource or route.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Internal reports a server-side failure.
func Internal(message string, cause error) *Error {
	return Wrap(KindInternal, message, cause)
}

// KindOf returns the kind carried anywhere in err's chain, or "" when err is
// unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Sentinels shared across controllers.
var (
	ErrRouteNotFound    = NotFound("Route not found")
	ErrMethodNotAllowed = MethodNotAllowed("Method not allowed")
	ErrEmptyBody        = InvalidInput("Request body is empty")
	ErrInvalidJSON      = InvalidInput("Invalid JSON")
	ErrMissingToken     = Unauthenticated("Missing or invalid Authorization header")
)

// PanicError carries a value recovered from a panicking controller.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface
func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

// Unwrap exposes a panicked error value.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
