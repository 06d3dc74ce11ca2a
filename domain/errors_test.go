package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestRequestError_Message(t *testing.T) {
	tests := []struct {
		name        string
		err         *RequestError
		expectedMsg string
	}{
		{
			name:        "backend detail message",
			err:         &RequestError{Status: http.StatusUnauthorized, Message: "Invalid ABHA ID or phone number"},
			expectedMsg: "Invalid ABHA ID or phone number",
		},
		{
			name:        "generic fallback when body had no message",
			err:         &RequestError{Status: http.StatusBadGateway},
			expectedMsg: "request failed with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, got)
			}
		})
	}
}

func TestRequestError_UnauthorizedMatching(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		matches bool
	}{
		{name: "401 matches ErrUnauthorized", status: http.StatusUnauthorized, matches: true},
		{name: "403 does not match", status: http.StatusForbidden, matches: false},
		{name: "500 does not match", status: http.StatusInternalServerError, matches: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := error(&RequestError{Status: tt.status, Message: "rejected"})
			if got := errors.Is(err, ErrUnauthorized); got != tt.matches {
				t.Errorf("errors.Is(%d, ErrUnauthorized) = %v, want %v", tt.status, got, tt.matches)
			}
		})
	}

	// A wrapped RequestError still matches.
	wrapped := fmt.Errorf("fetch profile: %w", &RequestError{Status: http.StatusUnauthorized})
	if !errors.Is(wrapped, ErrUnauthorized) {
		t.Error("wrapped 401 should match ErrUnauthorized")
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&NetworkError{Err: cause})

	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatal("errors.As should recover *NetworkError")
	}
	if netErr.Err != cause {
		t.Errorf("expected cause %v, got %v", cause, netErr.Err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "abha_id", Message: "must not be empty"}
	if err.Error() != "abha_id: must not be empty" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestErrInvalidResponse_Text(t *testing.T) {
	// The exact text is user-facing and asserted by the login flow.
	if ErrInvalidResponse.Error() != "Invalid response from server" {
		t.Errorf("unexpected text %q", ErrInvalidResponse.Error())
	}
}
