package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func configAs(t *testing.T, role sdk.Role) *config.GlobalConfig {
	t.Helper()
	store := sdk.NewSessionStore(sdk.NewMemoryCredentialStore())
	if role != "" {
		require.NoError(t, store.Save(&sdk.Session{
			Identity: sdk.UserIdentity{ID: 1, Name: "Test", Email: "test@example.com", Role: role},
			Token:    "opaque-token",
		}))
	}
	return &config.GlobalConfig{
		Logger:  slog.New(slog.DiscardHandler),
		Session: store,
		Router:  nav.NewRouter(store, nil),
	}
}

func TestCheckRoute(t *testing.T) {
	tests := []struct {
		name    string
		role    sdk.Role
		route   string
		wantErr string
	}{
		{name: "no annotation", role: "", route: ""},
		{name: "public route signed out", role: "", route: nav.LoginPath},
		{name: "user on browse", role: sdk.RoleUser, route: nav.BrowsePath},
		{name: "servicer on dashboard", role: sdk.RoleServicer, route: nav.DashboardPath},
		{name: "signed out on browse", role: "", route: nav.BrowsePath, wantErr: "not logged in"},
		{name: "user on servicer route", role: sdk.RoleUser, route: nav.CategoriesPath, wantErr: "requires a SERVICER account (signed in as USER); try 'rmsctl resources list'"},
		{name: "servicer on user route", role: sdk.RoleServicer, route: nav.MyBookingsPath, wantErr: "try 'rmsctl servicer dashboard'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "probe"}
			if tt.route != "" {
				cmd.Annotations = config.Route(tt.route)
			}

			err := checkRoute(cmd, configAs(t, tt.role))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "api message", err: fmt.Errorf("failed to create booking: %w", &sdk.APIError{StatusCode: 400, Message: "Resource is already booked for the selected time slot"}), want: "Resource is already booked for the selected time slot"},
		{name: "expired", err: fmt.Errorf("failed to list bookings: %w", sdk.ErrSessionExpired), want: "Your session has expired. Please log in again."},
		{name: "signed out", err: sdk.ErrNotAuthenticated, want: "Please log in to continue."},
		{name: "validation", err: &sdk.ValidationError{Field: "email", Message: "email is required"}, want: "email is required"},
		{name: "network", err: &sdk.NetworkError{Op: "GET", URL: "/resources", Err: errors.New("dial tcp: refused")}, want: "Unable to reach the server. Check your connection and try again."},
		{name: "cli error", err: errors.New("invalid booking id \"x\""), want: "invalid booking id \"x\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}

func TestCommandTreeRoutes(t *testing.T) {
	router := nav.NewRouter(sdk.NewSessionStore(sdk.NewMemoryCredentialStore()), nil)

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if path, ok := c.Annotations[config.RouteAnnotation]; ok {
			_, known := router.Lookup(path)
			assert.True(t, known, "%s is annotated with unknown route %s", c.CommandPath(), path)
		}
		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(rootCmd)
}
