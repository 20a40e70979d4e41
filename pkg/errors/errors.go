package errors

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

// ErrorType is the machine readable kind sent as "type" in error bodies
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeRateLimit    ErrorType = "RATE_LIMIT"
	ErrorTypeInternal     ErrorType = "INTERNAL"
	ErrorTypeDatabase     ErrorType = "DATABASE"
	ErrorTypeExternal     ErrorType = "EXTERNAL"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:   http.StatusBadRequest,
	ErrorTypeNotFound:     http.StatusNotFound,
	ErrorTypeUnauthorized: http.StatusUnauthorized,
	ErrorTypeRateLimit:    http.StatusTooManyRequests,
	ErrorTypeInternal:     http.StatusInternalServerError,
	ErrorTypeDatabase:     http.StatusInternalServerError,
	ErrorTypeExternal:     http.StatusBadGateway,
}

// AppError is an error that knows how it should be reported to a client.
// Details are only shown to clients for 4xx errors.
type AppError struct {
	Type    ErrorType
	Message string
	Details map[string]interface{}
	Cause   error
}

func newError(t ErrorType, message string) *AppError {
	return &AppError{Type: t, Message: message}
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

// Status is the HTTP status the error maps to
func (e *AppError) Status() int {
	if status, ok := statusByType[e.Type]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithCause attaches the underlying error. It is logged, never returned to
// the client.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError reports a request the client must fix
func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, message)
}

// NewNotFoundError builds "<resource> not found"
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, resource+" not found")
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return newError(ErrorTypeUnauthorized, message)
}

// NewRateLimitError reports an exhausted allowance. The client may retry
// once the window has passed.
func NewRateLimitError(limit int, window time.Duration) *AppError {
	err := newError(ErrorTypeRateLimit, fmt.Sprintf("rate limit exceeded: %d requests per %s", limit, window))
	err.Details = map[string]interface{}{
		"limit":             limit,
		"retryAfterSeconds": int(math.Ceil(window.Seconds())),
	}
	return err
}

func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, message)
}

// NewStoreError reports a record store failure. The message is fixed; the
// operation and cause only reach the logs.
func NewStoreError(operation string, err error) *AppError {
	e := newError(ErrorTypeDatabase, "Database not initialized")
	e.Details = map[string]interface{}{"operation": operation}
	e.Cause = err
	return e
}

// NewExternalError reports a failing third-party profile API
func NewExternalError(service string, err error) *AppError {
	e := newError(ErrorTypeExternal, fmt.Sprintf("external service '%s' error", service))
	e.Cause = err
	return e
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsStore checks if an error came from the record store
func IsStore(err error) bool {
	return IsType(err, ErrorTypeDatabase)
}
