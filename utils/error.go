package utils

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Handlers map these to HTTP
// status codes in exactly one place; everything below the HTTP layer
// returns them (or wraps them) instead of raw driver errors.
var (
	ErrorRecordNotFound = errors.New("record not found")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorForbidden      = errors.New("forbidden")
	ErrorConflict       = errors.New("conflict")
)

// ValidationError reports malformed input detected before any mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExternalServiceError wraps a failed (or unconfigured) call to the
// billing provider. The hire itself is never rolled back because of one.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return "external service error: " + e.Op
	}
	return fmt.Sprintf("external service error: %s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func NewExternalServiceError(op string, err error) error {
	return &ExternalServiceError{Op: op, Err: err}
}

func IsExternalServiceError(err error) bool {
	var ese *ExternalServiceError
	return errors.As(err, &ese)
}
