package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure.
type ErrorKind string

// Domain failure kinds.
const (
	ErrValidation       ErrorKind = "validation"
	ErrNotFound         ErrorKind = "not_found"
	ErrNotConfigured    ErrorKind = "not_configured"
	ErrInvalidOperation ErrorKind = "invalid_operation"
	ErrConflict         ErrorKind = "conflict"
	ErrConnection       ErrorKind = "connection_failure"
)

// AppError is a classified domain error. Handlers map the kind to an HTTP
// status; services raise them through the constructors below.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or contradictory input.
func NewValidationError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports an absent entity.
func NewNotFoundError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewNotConfiguredError reports a missing connector configuration.
func NewNotConfiguredError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrNotConfigured, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidOperationError reports an action the asset structurally cannot
// support.
func NewInvalidOperationError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError reports a concurrent-modification clash.
func NewConflictError(format string, args ...any) *AppError {
	return &AppError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// NewConnectionError wraps a transport or protocol failure from a connector.
func NewConnectionError(message string, err error) *AppError {
	return &AppError{Kind: ErrConnection, Message: message, Err: err}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// KindOf returns the kind of err, or empty string for unclassified errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
