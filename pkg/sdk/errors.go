package sdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned by calls that need a session when none is held.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrSessionExpired is returned when the backend rejects the stored token.
	// The session has already been cleared when this is returned.
	ErrSessionExpired = errors.New("session expired")
)

// NetworkError reports that the backend could not be reached or did not answer.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a rejected login or registration: bad credentials, duplicate
// account, and similar backend-reported failures.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError is a missing or malformed input detected before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthorizationError means the session's role does not grant the requested view or action.
type AuthorizationError struct {
	Required Role
	Actual   Role
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("requires role %s (signed in as %s)", e.Required, e.Actual)
}

// APIError is any other failure the backend reported, through the envelope or
// an HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// UserMessage renders err as a single human-readable line suitable for an
// inline form error. Raw transport details are never shown.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		validationErr *ValidationError
		authErr       *AuthError
		authzErr      *AuthorizationError
		apiErr        *APIError
		networkErr    *NetworkError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &authErr):
		return authErr.Error()
	case errors.Is(err, ErrSessionExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, ErrNotAuthenticated):
		return "Please log in to continue."
	case errors.As(err, &authzErr):
		return fmt.Sprintf("This page is only available to %s accounts.", authzErr.Required)
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.StatusCode >= 500 {
			return "The server encountered an error. Please try again later."
		}
		return "The request could not be completed."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond. Please try again."
	case errors.As(err, &networkErr):
		return "Unable to reach the server. Check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}
