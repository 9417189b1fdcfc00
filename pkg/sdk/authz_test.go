package sdk_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func TestHasRole_TruthTable(t *testing.T) {
	tests := []struct {
		name    string
		session *sdk.Session
		role    sdk.Role
		want    bool
	}{
		{name: "signed out asks USER", session: nil, role: sdk.RoleUser, want: false},
		{name: "signed out asks SERVICER", session: nil, role: sdk.RoleServicer, want: false},
		{name: "USER asks USER", session: testSession(sdk.RoleUser), role: sdk.RoleUser, want: true},
		{name: "USER asks SERVICER", session: testSession(sdk.RoleUser), role: sdk.RoleServicer, want: false},
		{name: "SERVICER asks SERVICER", session: testSession(sdk.RoleServicer), role: sdk.RoleServicer, want: true},
		{name: "SERVICER asks USER", session: testSession(sdk.RoleServicer), role: sdk.RoleUser, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := sdk.NewSessionStore(nil)
			if tt.session != nil {
				require.NoError(t, store.Save(tt.session))
			}
			assert.Equal(t, tt.want, store.HasRole(tt.role))
			assert.Equal(t, tt.session != nil, store.IsAuthenticated())
		})
	}
}

func TestPredicate_SeesClearImmediately(t *testing.T) {
	store := sdk.NewSessionStore(nil)
	require.NoError(t, store.Save(testSession(sdk.RoleServicer)))
	require.True(t, store.HasRole(sdk.RoleServicer))

	require.NoError(t, store.Clear())
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.HasRole(sdk.RoleServicer))
}

func TestRequireRole(t *testing.T) {
	store := sdk.NewSessionStore(nil)
	assert.ErrorIs(t, sdk.RequireRole(store, sdk.RoleUser), sdk.ErrNotAuthenticated)

	require.NoError(t, store.Save(testSession(sdk.RoleUser)))
	assert.NoError(t, sdk.RequireRole(store, sdk.RoleUser))

	err := sdk.RequireRole(store, sdk.RoleServicer)
	var authzErr *sdk.AuthorizationError
	require.True(t, errors.As(err, &authzErr))
	assert.Equal(t, sdk.RoleServicer, authzErr.Required)
	assert.Equal(t, sdk.RoleUser, authzErr.Actual)
}
