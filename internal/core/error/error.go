package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "An error occurred"
	// NotFoundMessage is returned when a customer lookup fails.
	NotFoundMessage = "Customer does not exist"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "not found"
)

// Kind classifies an error for the tool and HTTP boundaries.
type Kind int

const (
	// KindInternal is the default classification for unexpected faults.
	KindInternal Kind = iota
	// KindNotFound marks lookups of unknown customers or identifiers.
	KindNotFound
	// KindValidation marks malformed or non-positive inputs.
	KindValidation
	// KindComputation marks formula or division faults inside a tool.
	KindComputation
	// KindUpstream marks language-model call failures.
	KindUpstream
)

// AppError wraps an underlying error with a kind, HTTP status and safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    KindInternal,
		Status:  status,
		Message: message,
	}
}

// NotFound builds a customer-not-found error with the exact user-facing message.
func NotFound() *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: NotFoundMessage,
	}
}

// NotFoundMsg builds a not-found error with a custom safe message.
func NotFoundMsg(message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: message,
	}
}

// Validation builds a validation error with the given safe message.
func Validation(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// Computation wraps a formula or arithmetic fault.
func Computation(err error) *AppError {
	return &AppError{
		Err:     err,
		Kind:    KindComputation,
		Status:  http.StatusInternalServerError,
		Message: SystemErrorMessage,
	}
}

// Upstream wraps a language-model provider failure.
func Upstream(err error) *AppError {
	return &AppError{
		Err:     err,
		Kind:    KindUpstream,
		Status:  http.StatusBadGateway,
		Message: SystemErrorMessage,
	}
}

// KindOf reports the Kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// SafeMessage returns the user-facing message for err without internal detail.
func SafeMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return SystemErrorMessage
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
