package sdk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func TestGateway_LoginSuccessSetsRole(t *testing.T) {
	f := newFixture(t)

	session, err := f.gateway.Login(context.Background(), "sam@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "Sam Servicer", session.Identity.Name)
	assert.NotEmpty(t, session.Token)

	assert.True(t, f.store.IsAuthenticated())
	assert.True(t, f.store.HasRole(sdk.RoleServicer))
	assert.False(t, f.store.HasRole(sdk.RoleUser))
}

func TestGateway_LoginFailureLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name    string
		before  *sdk.Session
		email   string
		wantMsg string
	}{
		{name: "signed out", email: "uma@example.com", wantMsg: "Invalid email or password"},
		{name: "already signed in", before: testSession(sdk.RoleUser), email: "uma@example.com", wantMsg: "Invalid email or password"},
		{name: "unknown account", email: "nobody@example.com", wantMsg: "Invalid email or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.before != nil {
				require.NoError(t, f.store.Save(tt.before))
			}

			_, err := f.gateway.Login(context.Background(), tt.email, "wrong")
			var authErr *sdk.AuthError
			require.True(t, errors.As(err, &authErr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantMsg, sdk.UserMessage(err))
			assert.Equal(t, tt.before, f.store.Current())
		})
	}
}

func TestGateway_LoginValidatesBeforeNetwork(t *testing.T) {
	f := newFixture(t)

	_, err := f.gateway.Login(context.Background(), "  ", testPassword)
	var validationErr *sdk.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "email", validationErr.Field)
	assert.Empty(t, f.srv.Requests())
}

func TestGateway_LoginNetworkFailure(t *testing.T) {
	f := newFixture(t)
	f.srv.Close()

	_, err := f.gateway.Login(context.Background(), "uma@example.com", testPassword)
	var networkErr *sdk.NetworkError
	require.True(t, errors.As(err, &networkErr))
	assert.Contains(t, sdk.UserMessage(err), "Unable to reach the server")
	assert.False(t, f.store.IsAuthenticated())
}

func TestGateway_Register(t *testing.T) {
	f := newFixture(t)

	session, err := f.gateway.Register(context.Background(), "New User", "new@example.com", "pw", sdk.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, sdk.RoleUser, session.Identity.Role)
	assert.True(t, f.store.HasRole(sdk.RoleUser))
}

func TestGateway_RegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.gateway.Register(context.Background(), "Again", "uma@example.com", "pw", sdk.RoleServicer)
	require.Error(t, err)
	assert.Equal(t, "Email already registered", sdk.UserMessage(err))
	assert.False(t, f.store.IsAuthenticated())
}

func TestGateway_RegisterRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.gateway.Register(context.Background(), "X", "x@example.com", "pw", sdk.Role("ADMIN"))
	var validationErr *sdk.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "role", validationErr.Field)
	assert.Empty(t, f.srv.Requests())
}

func TestGateway_LogoutThenReloadIsSignedOut(t *testing.T) {
	backend := sdk.NewMemoryCredentialStore()
	f := newFixture(t)
	store := sdk.NewSessionStore(backend)
	gateway := sdk.NewGateway(sdk.NewClient(f.srv.URL), store, nil)

	_, err := gateway.Login(context.Background(), "uma@example.com", testPassword)
	require.NoError(t, err)

	gateway.Logout()
	assert.False(t, store.IsAuthenticated())

	reloaded := sdk.NewSessionStore(backend)
	assert.Nil(t, reloaded.Load())
	assert.False(t, reloaded.IsAuthenticated())
}

func TestGateway_LogoutNeverFails(t *testing.T) {
	backend := &failingStore{}
	store := sdk.NewSessionStore(backend)
	require.NoError(t, store.Save(testSession(sdk.RoleUser)))
	backend.deleteErr = errors.New("permission denied")

	gateway := sdk.NewGateway(nil, store, nil)
	gateway.Logout()

	assert.False(t, store.IsAuthenticated())
}

func TestGateway_AuthenticateDoesNotTouchStore(t *testing.T) {
	f := newFixture(t)

	session, err := f.gateway.Authenticate(context.Background(), sdk.Credentials{Email: "uma@example.com", Password: testPassword}, false)
	require.NoError(t, err)
	assert.False(t, f.store.IsAuthenticated())

	require.NoError(t, f.gateway.Establish(session))
	assert.True(t, f.store.HasRole(sdk.RoleUser))
}

func TestGateway_RegisterNeverFallsBackToLogin(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		role      sdk.Role
		wantField string
	}{
		{name: "no name or role", wantField: "name"},
		{name: "no role", userName: "Uma", wantField: "role"},
		{name: "no name", role: sdk.RoleUser, wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			session, err := f.gateway.Register(context.Background(), tt.userName, "uma@example.com", testPassword, tt.role)
			assert.Nil(t, session)
			var validationErr *sdk.ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Empty(t, f.srv.Requests())
			assert.False(t, f.store.IsAuthenticated())
		})
	}
}

func TestGateway_ExpireTokenKeepsNewerSession(t *testing.T) {
	f := newFixture(t)

	first, err := f.gateway.Login(context.Background(), "uma@example.com", testPassword)
	require.NoError(t, err)
	second, err := f.gateway.Login(context.Background(), "sam@example.com", testPassword)
	require.NoError(t, err)

	f.gateway.ExpireToken(first.Token)
	require.True(t, f.store.IsAuthenticated())
	assert.Equal(t, second.Token, f.store.Current().Token)

	f.gateway.ExpireToken(second.Token)
	assert.False(t, f.store.IsAuthenticated())
}
