package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed input. The ledger is left untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a formatted message
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource, or one the caller does not own
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Resource + " not found"
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, message string) error {
	return &NotFoundError{Resource: resource, Message: message}
}

// ProviderError wraps a failure of the external railway data provider
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("railway provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProvider wraps err as a ProviderError for operation op
func NewProvider(op string, err error) error {
	return &ProviderError{Op: op, Err: err}
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsProvider reports whether err is or wraps a ProviderError
func IsProvider(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}

// HTTPStatus maps an error to the status code the API answers with
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsProvider(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
