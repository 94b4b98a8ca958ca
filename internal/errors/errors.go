package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Nobi error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"           // 404
	ErrItineraryTooLarge ErrorCode = "ITINERARY_TOO_LARGE" // 413
	ErrInternal          ErrorCode = "INTERNAL"            // 500
	ErrUpstream          ErrorCode = "UPSTREAM"            // 502
	ErrUnavailable       ErrorCode = "UNAVAILABLE"         // 503
)

// NobiError represents a structured error with code, status, and details.
type NobiError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *NobiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *NobiError {
	return &NobiError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing itinerary or resource.
func NewNotFound(identifier string) *NobiError {
	return &NobiError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("itinerary not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewBodyTooLarge creates a 413 error when a request body exceeds maxBytes.
func NewBodyTooLarge(maxBytes int64) *NobiError {
	return &NobiError{
		Code:    ErrItineraryTooLarge,
		Status:  413,
		Message: fmt.Sprintf("request body exceeds maximum size: %d bytes", maxBytes),
		Details: map[string]any{"max_bytes": maxBytes},
	}
}

// NewItineraryTooLarge creates a 413 error when itinerary text exceeds the size limit.
func NewItineraryTooLarge(max, actual int) *NobiError {
	return &NobiError{
		Code:    ErrItineraryTooLarge,
		Status:  413,
		Message: fmt.Sprintf("itinerary exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewUpstream creates a 502 error when a remote service (text generation,
// country catalog) fails or returns an unusable response.
func NewUpstream(service string, err error) *NobiError {
	msg := fmt.Sprintf("%s request failed", service)
	if err != nil {
		msg = fmt.Sprintf("%s request failed: %v", service, err)
	}
	return &NobiError{
		Code:    ErrUpstream,
		Status:  502,
		Message: msg,
		Details: map[string]any{"service": service},
	}
}

// NewUnavailable creates a 503 error when data is neither reachable nor cached.
func NewUnavailable(msg string) *NobiError {
	return &NobiError{
		Code:    ErrUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *NobiError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &NobiError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err is, or wraps, a NobiError with the given code.
func Is(err error, code ErrorCode) bool {
	var nErr *NobiError
	if stderrors.As(err, &nErr) {
		return nErr.Code == code
	}
	return false
}

// As reports whether err is, or wraps, a NobiError and returns it.
func As(err error) (*NobiError, bool) {
	var nErr *NobiError
	if stderrors.As(err, &nErr) {
		return nErr, true
	}
	return nil, false
}
