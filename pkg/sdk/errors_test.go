package sdk_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: &sdk.ValidationError{Field: "email", Message: "email is required"}, want: "email is required"},
		{name: "auth", err: &sdk.AuthError{Message: "Invalid email or password"}, want: "Invalid email or password"},
		{name: "auth without message", err: &sdk.AuthError{}, want: "authentication failed"},
		{name: "wrapped expiry", err: fmt.Errorf("list bookings: %w", sdk.ErrSessionExpired), want: "Your session has expired. Please log in again."},
		{name: "not authenticated", err: sdk.ErrNotAuthenticated, want: "Please log in to continue."},
		{name: "wrong role", err: &sdk.AuthorizationError{Required: sdk.RoleServicer, Actual: sdk.RoleUser}, want: "This page is only available to SERVICER accounts."},
		{name: "api message", err: &sdk.APIError{StatusCode: 400, Message: "Category not found"}, want: "Category not found"},
		{name: "api client error", err: &sdk.APIError{StatusCode: 404}, want: "The request could not be completed."},
		{name: "network", err: &sdk.NetworkError{Op: "GET", URL: "/categories", Err: errors.New("connection refused")}, want: "Unable to reach the server. Check your connection and try again."},
		{name: "network timeout", err: &sdk.NetworkError{Op: "GET", URL: "/categories", Err: context.DeadlineExceeded}, want: "The server took too long to respond. Please try again."},
		{name: "unknown", err: errors.New("boom"), want: "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sdk.UserMessage(tt.err))
		})
	}
}

func TestUserMessage_HidesTransportDetails(t *testing.T) {
	err := &sdk.NetworkError{Op: "POST", URL: "/auth/login", Err: errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")}
	assert.NotContains(t, sdk.UserMessage(err), "127.0.0.1")
}

func TestParseRole(t *testing.T) {
	role, err := sdk.ParseRole(" servicer ")
	assert.NoError(t, err)
	assert.Equal(t, sdk.RoleServicer, role)

	_, err = sdk.ParseRole("admin")
	var validationErr *sdk.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
