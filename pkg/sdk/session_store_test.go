package sdk_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

type failingStore struct {
	sdk.MemoryCredentialStore
	loadErr   error
	saveErr   error
	deleteErr error
	deletes   int
}

func (f *failingStore) LoadSession() (*sdk.Session, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemoryCredentialStore.LoadSession()
}

func (f *failingStore) SaveSession(s *sdk.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryCredentialStore.SaveSession(s)
}

func (f *failingStore) DeleteSession() error {
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryCredentialStore.DeleteSession()
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func TestSessionStore_LoadAfterSave(t *testing.T) {
	backend := sdk.NewMemoryCredentialStore()
	first := sdk.NewSessionStore(backend)
	require.NoError(t, first.Save(testSession(sdk.RoleServicer)))

	// A fresh store over the same durable layer models a process restart.
	second := sdk.NewSessionStore(backend)
	assert.False(t, second.IsAuthenticated(), "nothing is read before Load")

	loaded := second.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, sdk.RoleServicer, loaded.Identity.Role)
	assert.True(t, second.IsAuthenticated())
	assert.True(t, second.HasRole(sdk.RoleServicer))
	assert.False(t, second.HasRole(sdk.RoleUser))
}

func TestSessionStore_LoadFailsSoft(t *testing.T) {
	tests := []struct {
		name        string
		backend     func(t *testing.T) *failingStore
		wantDeletes int
	}{
		{
			name: "nothing stored",
			backend: func(t *testing.T) *failingStore {
				return &failingStore{}
			},
			wantDeletes: 0,
		},
		{
			name: "unreadable",
			backend: func(t *testing.T) *failingStore {
				return &failingStore{loadErr: errors.New("corrupted json")}
			},
			wantDeletes: 1,
		},
		{
			name: "missing token",
			backend: func(t *testing.T) *failingStore {
				f := &failingStore{}
				s := testSession(sdk.RoleUser)
				s.Token = ""
				require.NoError(t, f.MemoryCredentialStore.SaveSession(s))
				return f
			},
			wantDeletes: 1,
		},
		{
			name: "unknown role",
			backend: func(t *testing.T) *failingStore {
				f := &failingStore{}
				s := testSession("ADMIN")
				require.NoError(t, f.MemoryCredentialStore.SaveSession(s))
				return f
			},
			wantDeletes: 1,
		},
		{
			name: "expired token",
			backend: func(t *testing.T) *failingStore {
				f := &failingStore{}
				s := testSession(sdk.RoleUser)
				s.Token = signedToken(t, time.Now().Add(-time.Minute))
				require.NoError(t, f.MemoryCredentialStore.SaveSession(s))
				return f
			},
			wantDeletes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := tt.backend(t)
			store := sdk.NewSessionStore(backend)

			assert.Nil(t, store.Load())
			assert.False(t, store.IsAuthenticated())
			for _, role := range sdk.Roles {
				assert.False(t, store.HasRole(role))
			}
			assert.Equal(t, tt.wantDeletes, backend.deletes)
		})
	}
}

func TestSessionStore_LoadKeepsUnexpiredJWT(t *testing.T) {
	backend := sdk.NewMemoryCredentialStore()
	session := testSession(sdk.RoleUser)
	session.Token = signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, backend.SaveSession(session))

	store := sdk.NewSessionStore(backend)
	require.NotNil(t, store.Load())
	assert.True(t, store.HasRole(sdk.RoleUser))
}

func TestSessionStore_LoadHonoursClock(t *testing.T) {
	backend := sdk.NewMemoryCredentialStore()
	session := testSession(sdk.RoleUser)
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	session.Token = signedToken(t, exp)
	require.NoError(t, backend.SaveSession(session))

	store := sdk.NewSessionStore(backend, sdk.WithClock(func() time.Time { return exp.Add(time.Second) }))
	assert.Nil(t, store.Load())
}

func TestSessionStore_SaveRejectsIncompleteSession(t *testing.T) {
	store := sdk.NewSessionStore(nil)
	session := testSession(sdk.RoleUser)
	session.Identity.Email = ""

	require.Error(t, store.Save(session))
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStore_SaveFailureLeavesMemoryUnchanged(t *testing.T) {
	backend := &failingStore{saveErr: errors.New("disk full")}
	store := sdk.NewSessionStore(backend)

	err := store.Save(testSession(sdk.RoleUser))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStore_ClearDropsMemoryEvenWhenDeleteFails(t *testing.T) {
	backend := &failingStore{}
	store := sdk.NewSessionStore(backend)
	require.NoError(t, store.Save(testSession(sdk.RoleUser)))

	backend.deleteErr = errors.New("read-only filesystem")
	err := store.Clear()
	require.Error(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Current())
}

func TestSessionStore_CurrentReturnsCopy(t *testing.T) {
	store := sdk.NewSessionStore(nil)
	require.NoError(t, store.Save(testSession(sdk.RoleUser)))

	current := store.Current()
	current.Identity.Role = sdk.RoleServicer

	assert.True(t, store.HasRole(sdk.RoleUser))
}

func TestSessionStore_ClearIfToken(t *testing.T) {
	backend := sdk.NewMemoryCredentialStore()
	store := sdk.NewSessionStore(backend)
	require.NoError(t, store.Save(testSession(sdk.RoleUser)))

	cleared, err := store.ClearIfToken("some-older-token")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.True(t, store.IsAuthenticated())

	cleared, err = store.ClearIfToken("")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.True(t, store.IsAuthenticated())

	cleared, err = store.ClearIfToken("opaque-token")
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, sdk.NewSessionStore(backend).Load())

	cleared, err = store.ClearIfToken("opaque-token")
	require.NoError(t, err)
	assert.False(t, cleared)
}
