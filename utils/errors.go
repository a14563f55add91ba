package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies failures surfaced to clients
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidArgument
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindValidation:
		return "ValidationError"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}

// HTTPStatus maps a kind to its response status. Conflicts are reported as
// 400 to keep the register and watch list responses stable for clients.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidArgument, KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the error type returned by services
type AppError struct {
	Kind    ErrorKind
	Message string
	// Fields holds per-field messages for validation failures
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewInvalidArgument(msg string) *AppError {
	return &AppError{Kind: KindInvalidArgument, Message: msg}
}

func NewValidationError(fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

// NewInternal wraps an unexpected collaborator failure
func NewInternal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind of err, KindInternal for foreign errors
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
