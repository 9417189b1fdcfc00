package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func storeAs(t *testing.T, role sdk.Role) *sdk.SessionStore {
	t.Helper()
	store := sdk.NewSessionStore(nil)
	if role == "" {
		return store
	}
	require.NoError(t, store.Save(&sdk.Session{
		Identity: sdk.UserIdentity{ID: 1, Name: "Test", Email: "test@example.com", Role: role},
		Token:    "token",
	}))
	return store
}

func TestGuard_Check(t *testing.T) {
	tests := []struct {
		name       string
		role       sdk.Role
		req        nav.Requirement
		wantOut    nav.Outcome
		wantTarget string
		wantReason nav.Reason
	}{
		{name: "public signed out", req: nav.Public, wantOut: nav.Render},
		{name: "public signed in", role: sdk.RoleUser, req: nav.Public, wantOut: nav.Render},
		{name: "any role signed out", req: nav.AnyRole, wantOut: nav.Redirect, wantTarget: nav.LoginPath, wantReason: nav.ReasonUnauthenticated},
		{name: "any role as servicer", role: sdk.RoleServicer, req: nav.AnyRole, wantOut: nav.Render},
		{name: "servicer route signed out", req: nav.RequireRole(sdk.RoleServicer), wantOut: nav.Redirect, wantTarget: nav.LoginPath, wantReason: nav.ReasonUnauthenticated},
		{name: "servicer route as user", role: sdk.RoleUser, req: nav.RequireRole(sdk.RoleServicer), wantOut: nav.Redirect, wantTarget: "/user/browse", wantReason: nav.ReasonWrongRole},
		{name: "user route as servicer", role: sdk.RoleServicer, req: nav.RequireRole(sdk.RoleUser), wantOut: nav.Redirect, wantTarget: "/servicer/dashboard", wantReason: nav.ReasonWrongRole},
		{name: "servicer route as servicer", role: sdk.RoleServicer, req: nav.RequireRole(sdk.RoleServicer), wantOut: nav.Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := nav.NewGuard(storeAs(t, tt.role))
			got := guard.Check(tt.req)
			assert.Equal(t, tt.wantOut, got.Outcome)
			assert.Equal(t, tt.wantTarget, got.Target)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestGuard_ReevaluatesAfterLogout(t *testing.T) {
	store := storeAs(t, sdk.RoleServicer)
	guard := nav.NewGuard(store)
	req := nav.RequireRole(sdk.RoleServicer)

	require.Equal(t, nav.Render, guard.Check(req).Outcome)
	require.NoError(t, store.Clear())

	got := guard.Check(req)
	assert.Equal(t, nav.Redirect, got.Outcome)
	assert.Equal(t, nav.LoginPath, got.Target)
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/user/browse", nav.HomeFor(sdk.RoleUser))
	assert.Equal(t, "/servicer/dashboard", nav.HomeFor(sdk.RoleServicer))
	assert.Equal(t, "/", nav.HomeFor("ADMIN"))
}

func TestRequirement_String(t *testing.T) {
	assert.Equal(t, "public", nav.Public.String())
	assert.Equal(t, "authenticated", nav.AnyRole.String())
	assert.Equal(t, "SERVICER", nav.RequireRole(sdk.RoleServicer).String())
}
