package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Session errors
var (
	// ErrUnauthorized matches any RequestError carrying a 401 status. The
	// session manager treats it as "invalidate the current session".
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidResponse is returned when a login response is missing the
	// access token or the user profile. Its text is user-facing.
	ErrInvalidResponse = errors.New("Invalid response from server")
)

// RequestError means the backend responded with a non-success status. The
// message is extracted from the response body when present.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) identify a 401 response.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// NetworkError means no response reached the client at all (connectivity
// failure, DNS, connection refused).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError is a client-side input rejection; it never reaches the
// network layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
