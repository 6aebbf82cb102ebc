package writefreely

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the WriteFreely client.
var (
	// ErrAuthentication is returned when the server rejects a username/password pair.
	ErrAuthentication = errors.New("authentication failed: credentials rejected")

	// ErrLoggedOut is returned when an operation requires authentication and none is present.
	ErrLoggedOut = errors.New("operation requires authentication")

	// ErrUsage is returned on caller-side misuse, such as operating on an
	// entity with no attached client or omitting required fields.
	ErrUsage = errors.New("invalid usage: missing client or required fields")

	// ErrUnknown is returned for conditions that should be unreachable in
	// normal operation, such as a batch response shorter than the request.
	ErrUnknown = errors.New("unexpected response from server")
)

// RequestError represents a non-success HTTP status returned by the API.
type RequestError struct {
	Code   int
	Reason string
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("writefreely API error: status %d: %s", e.Code, e.Reason)
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.Code == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RequestError) IsUnauthorized() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
}

// ConnectionError represents a transport-level failure before any HTTP
// response was received (DNS, connection refused, timeout).
type ConnectionError struct {
	Err error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to writefreely instance failed: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// URLError indicates the base URL and endpoint could not be composed into a
// valid request URL.
type URLError struct {
	Base     string
	Endpoint string
}

// Error implements the error interface
func (e *URLError) Error() string {
	return fmt.Sprintf("cannot build API URL from base %q and endpoint %q", e.Base, e.Endpoint)
}

// ParseError indicates the response body did not match the expected envelope
// or payload shape. The raw response text is retained for debugging.
type ParseError struct {
	Text string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	text := e.Text
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return fmt.Sprintf("failed to parse API response: %s", text)
}
