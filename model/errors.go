package model

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType categorizes domain failures so the HTTP layer can map them to status codes.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypeForbidden  ErrorType = "forbidden"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeStorage    ErrorType = "storage"
)

// AppError is the error returned by every domain operation in this package.
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Retryable bool
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

func NewAuthError(message string) *AppError {
	return &AppError{Type: ErrorTypeAuth, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Type: ErrorTypeForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

// NewStorageError wraps a persistence failure. Deadline and cancellation causes are retryable.
func NewStorageError(message string, cause error) *AppError {
	retryable := errors.Is(cause, context.DeadlineExceeded) || errors.Is(cause, context.Canceled)
	return &AppError{Type: ErrorTypeStorage, Message: message, Cause: cause, Retryable: retryable}
}

// AsAppError unwraps err into an *AppError, wrapping unknown errors as storage failures.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewStorageError("storage operation failed", err)
}

// IsErrorType reports whether err is an *AppError of the given type.
func IsErrorType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
