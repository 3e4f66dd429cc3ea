package models

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeIntegrity    = "INTEGRITY_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the error type the service and repository layers return.
// Handlers branch on Code to pick the HTTP response.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a missing entity by kind and id.
func NewNotFoundError(resource string, id uint) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id %d not found", resource, id),
	}
}

// NewValidationError reports rejected input. Validation runs before any
// store interaction.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewIntegrityError reports a storage constraint violation, typically a
// duplicate username or email surfacing at commit time.
func NewIntegrityError(message string, err error) *AppError {
	return &AppError{Code: CodeIntegrity, Message: message, Err: err}
}

// NewUnauthorizedError reports a mutation attempted by an actor who may
// not perform it.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal error", Err: err}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsValidation reports whether err is a validation AppError.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsIntegrity reports whether err is an integrity AppError.
func IsIntegrity(err error) bool { return hasCode(err, CodeIntegrity) }

// IsUnauthorized reports whether err is an unauthorized AppError.
func IsUnauthorized(err error) bool { return hasCode(err, CodeUnauthorized) }
