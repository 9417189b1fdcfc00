package sdk_test

import (
	"testing"
	"time"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
	"github.com/Syam115/Resource-Management-System/pkg/sdk/sdktest"
)

const testPassword = "s3cret-pass"

type fixture struct {
	srv      *sdktest.Server
	store    *sdk.SessionStore
	gateway  *sdk.Gateway
	user     sdktest.User
	servicer sdktest.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := sdktest.NewServer(t)
	store := sdk.NewSessionStore(sdk.NewMemoryCredentialStore())
	return &fixture{
		srv:      srv,
		store:    store,
		gateway:  sdk.NewGateway(sdk.NewClient(srv.URL), store, nil),
		user:     srv.AddUser("Uma User", "uma@example.com", testPassword, "USER"),
		servicer: srv.AddUser("Sam Servicer", "sam@example.com", testPassword, "SERVICER"),
	}
}

// clientFor returns a client authenticated as u.
func (f *fixture) clientFor(u sdktest.User, opts ...sdk.ClientOption) *sdk.Client {
	opts = append([]sdk.ClientOption{sdk.WithToken(f.srv.TokenFor(u))}, opts...)
	return sdk.NewClient(f.srv.URL, opts...)
}

func testSession(role sdk.Role) *sdk.Session {
	return &sdk.Session{
		Identity: sdk.UserIdentity{ID: 7, Name: "Test", Email: "test@example.com", Role: role},
		Token:    "opaque-token",
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}
