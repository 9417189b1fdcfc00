package nav_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func TestRouter_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		role          sdk.Role
		path          string
		wantView      nav.View
		wantPath      string
		wantRedirects []string
		wantReason    nav.Reason
	}{
		{name: "landing signed out", path: "/", wantView: nav.ViewLanding, wantPath: "/"},
		{name: "landing as user", role: sdk.RoleUser, path: "/", wantView: nav.ViewBrowse, wantPath: "/user/browse", wantRedirects: []string{"/"}, wantReason: nav.ReasonSignedIn},
		{name: "landing as servicer", role: sdk.RoleServicer, path: "/", wantView: nav.ViewDashboard, wantPath: "/servicer/dashboard", wantRedirects: []string{"/"}, wantReason: nav.ReasonSignedIn},
		{name: "login signed out", path: "/login", wantView: nav.ViewLogin, wantPath: "/login"},
		{name: "protected signed out", path: "/servicer/categories", wantView: nav.ViewLogin, wantPath: "/login", wantRedirects: []string{"/servicer/categories"}, wantReason: nav.ReasonUnauthenticated},
		{name: "servicer page as user", role: sdk.RoleUser, path: "/servicer/bookings", wantView: nav.ViewBrowse, wantPath: "/user/browse", wantRedirects: []string{"/servicer/bookings"}, wantReason: nav.ReasonWrongRole},
		{name: "user page as servicer", role: sdk.RoleServicer, path: "/user/my-bookings", wantView: nav.ViewDashboard, wantPath: "/servicer/dashboard", wantRedirects: []string{"/user/my-bookings"}, wantReason: nav.ReasonWrongRole},
		{name: "own page", role: sdk.RoleUser, path: "/user/my-bookings/", wantView: nav.ViewMyBookings, wantPath: "/user/my-bookings"},
		{name: "unknown signed out", path: "/admin", wantView: nav.ViewLanding, wantPath: "/", wantRedirects: []string{"/admin"}, wantReason: nav.ReasonUnknownRoute},
		{name: "unknown as servicer", role: sdk.RoleServicer, path: "/nope", wantView: nav.ViewDashboard, wantPath: "/servicer/dashboard", wantRedirects: []string{"/nope", "/"}, wantReason: nav.ReasonUnknownRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := nav.NewRouter(storeAs(t, tt.role), nil)
			res, err := router.Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantView, res.Route.View)
			assert.Equal(t, tt.wantPath, res.Route.Path)
			assert.Equal(t, tt.wantRedirects, res.Redirects)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Equal(t, tt.path, res.Requested)
		})
	}
}

func TestRouter_ResolveDetectsLoops(t *testing.T) {
	// A table whose login page itself needs a session can never settle.
	routes := []nav.Route{
		{Path: nav.RootPath, View: nav.ViewLanding, Requirement: nav.AnyRole},
		{Path: nav.LoginPath, View: nav.ViewLogin, Requirement: nav.AnyRole},
	}
	router := nav.NewRouter(storeAs(t, ""), routes)

	_, err := router.Resolve("/")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nav.ErrRedirectLoop))
}

func TestRouter_Links(t *testing.T) {
	titles := func(links []nav.Link) []string {
		out := make([]string, 0, len(links))
		for _, l := range links {
			out = append(out, l.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Login", "Register"}, titles(nav.NewRouter(storeAs(t, ""), nil).Links()))
	assert.Equal(t, []string{"Browse", "My Bookings"}, titles(nav.NewRouter(storeAs(t, sdk.RoleUser), nil).Links()))
	assert.Equal(t, []string{"Dashboard", "Categories", "Resources", "Bookings"}, titles(nav.NewRouter(storeAs(t, sdk.RoleServicer), nil).Links()))
}

func TestRouter_ServicerReachesCategoryManagement(t *testing.T) {
	router := nav.NewRouter(storeAs(t, sdk.RoleServicer), nil)
	res, err := router.Resolve("/servicer/categories")
	require.NoError(t, err)
	assert.False(t, res.Redirected())
	assert.Equal(t, nav.ViewCategories, res.Route.View)
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"":                     "/",
		"/":                    "/",
		"login":                "/login",
		" /user/browse/ ":      "/user/browse",
		"/servicer/bookings?x": "/servicer/bookings",
	}
	for in, want := range tests {
		assert.Equal(t, want, nav.Clean(in), "Clean(%q)", in)
	}
}
