package wistia

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidURL indicates a request URL could not be composed
	ErrInvalidURL = errors.New("invalid wistia request URL")
	// ErrMissingCredential indicates the client was built without an API password
	ErrMissingCredential = errors.New("wistia API password is required")
	// ErrUnknownAssetKind indicates an asset type token outside the known set
	ErrUnknownAssetKind = errors.New("unknown asset kind")
)

// URLError is returned when a route or base URL cannot be turned into a
// well-formed request URL. It always matches ErrInvalidURL with errors.Is.
type URLError struct {
	Route Route
	URL   string
	Err   error
}

// Error implements the error interface
func (e *URLError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidURL, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrInvalidURL, e.Err)
}

func (e *URLError) Unwrap() []error { return []error{ErrInvalidURL, e.Err} }

// DecodeError describes a structural mismatch between a response body and
// the shape it was decoded into. Path is a dotted JSON path such as
// "assets[2].type"; it is empty for document level failures.
type DecodeError struct {
	Path     string
	Expected string
	Actual   string
	Err      error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	switch {
	case e.Path != "" && e.Expected != "":
		return fmt.Sprintf("wistia: decode %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
	case e.Path != "":
		return fmt.Sprintf("wistia: decode %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("wistia: decode: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError is reported by HTTPTransport when the API answers with a non-2xx
// status. It is a transport error and reaches callers unchanged.
type APIError struct {
	StatusCode int
	Method     string
	Route      string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("wistia API error: %s %s: status %d: %s", e.Method, e.Route, e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
