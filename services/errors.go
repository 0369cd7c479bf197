package services

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a service failure. Every error crossing the service
// boundary carries exactly one kind, which the HTTP layer maps to a status
// code.
type ErrorKind int

const (
	KindAuthentication ErrorKind = iota
	KindAuthorization
	KindNotFound
	KindValidation
	KindConflict
	KindPersistence
)

// HTTPStatus returns the externally observable status code for a kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error is a tagged service error. Message is safe to show to callers; Err
// holds the underlying cause for logs and is never serialized.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func authorizationError(message string) *Error {
	return newError(KindAuthorization, message)
}

func notFoundError(message string) *Error {
	return newError(KindNotFound, message)
}

func validationError(message string) *Error {
	return newError(KindValidation, message)
}

func conflictError(message string) *Error {
	return newError(KindConflict, message)
}

// persistenceError wraps an unexpected store failure behind a generic
// message so internal detail is logged but never leaked to the caller.
func persistenceError(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "Database operation failed", Err: err}
}

// KindOf extracts the kind from a service error. ok is false for errors that
// did not originate in this package.
func KindOf(err error) (ErrorKind, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind, true
	}
	return 0, false
}
