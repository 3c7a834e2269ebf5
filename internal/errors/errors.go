// Package errors defines the failure taxonomy surfaced to users and operators.
// CatalogError carries the endpoint and HTTP status so every failure can be logged
// with the same diagnostic fields.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error type constants
const (
	ErrorTypeValidation = "VALIDATION_FAILURE"
	ErrorTypeNetwork    = "NETWORK_FAILURE"
	ErrorTypeFetch      = "FETCH_FAILURE"
	ErrorTypeWrite      = "WRITE_FAILURE"
	ErrorTypeCancelled  = "CANCELLED"
)

// CatalogError represents a failed search or creation action
type CatalogError struct {
	Type     string
	Message  string
	Field    string // input that failed validation
	Endpoint string
	Status   int // HTTP status, 0 when no response was received
	Cause    error
}

func (e *CatalogError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// NewCatalogError creates a new CatalogError
func NewCatalogError(errorType, message, endpoint string, status int, cause error) *CatalogError {
	return &CatalogError{
		Type:     errorType,
		Message:  message,
		Endpoint: endpoint,
		Status:   status,
		Cause:    cause,
	}
}

// NewValidationError creates an error for missing or malformed user input in field.
// No request has been issued when this is returned.
func NewValidationError(field, message string) *CatalogError {
	err := NewCatalogError(ErrorTypeValidation, message, "", 0, nil)
	err.Field = field
	return err
}

// NewNetworkError creates a transport-level error (DNS, refused connection, timeout)
func NewNetworkError(endpoint string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeNetwork, "catalog backend unreachable", endpoint, 0, cause)
}

// NewFetchError creates an error for a non-success status on a read request
func NewFetchError(endpoint string, status int, message string) *CatalogError {
	return NewCatalogError(ErrorTypeFetch, message, endpoint, status, nil)
}

// NewWriteError creates an error for a non-success status on a create request
func NewWriteError(endpoint string, status int, message string) *CatalogError {
	return NewCatalogError(ErrorTypeWrite, message, endpoint, status, nil)
}

// NewCancelledError creates an error for a request superseded by a newer one
func NewCancelledError(endpoint string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeCancelled, "request superseded", endpoint, 0, cause)
}

// IsType reports whether err is a CatalogError of the given type
func IsType(err error, errorType string) bool {
	var ce *CatalogError
	if stderrors.As(err, &ce) {
		return ce.Type == errorType
	}
	return false
}

// As extracts a CatalogError from err
func As(err error) (*CatalogError, bool) {
	var ce *CatalogError
	ok := stderrors.As(err, &ce)
	return ce, ok
}
