// internal/app/system/httperr/httperr.go

// Package httperr defines the error taxonomy for the JSON API and renders
// errors as machine-readable responses.
//
// Stores and policy code return *httperr.Error values; handlers hand whatever
// they get to Write, which maps the kind to an HTTP status and a JSON body of
// the form {"error": "<kind>", "message": "..."}. Unrecognized errors are
// treated as dependency failures (503) and logged, never silently swallowed.
package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Kind identifies a class of API error.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindDependency   Kind = "dependency_error"
)

// Error is an API error with a kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, not exposed to callers
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a 400-class error for a bad request field.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a 404-class error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a 409-class error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized returns a 401-class error.
func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Forbidden returns a 403-class error.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Dependency wraps a backend failure (persistence unreachable, etc.).
func Dependency(err error, format string, args ...any) *Error {
	return &Error{Kind: KindDependency, Message: fmt.Sprintf(format, args...), Err: err}
}

// Status maps a kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusServiceUnavailable
	}
}

// KindOf extracts the Kind from err, or KindDependency for unknown errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

type body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Write renders err as a JSON response. Dependency-class errors (including
// any error that is not an *Error) are logged with their cause; 4xx errors
// are the caller's problem and only rendered.
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Dependency(err, "backend unavailable")
	}

	if e.Kind == KindDependency && log != nil {
		log.Error("dependency failure", zap.String("message", e.Message), zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(e.Kind))
	_ = json.NewEncoder(w).Encode(body{Error: string(e.Kind), Message: e.Message})
}
