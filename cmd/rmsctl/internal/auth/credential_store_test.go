package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func testSession() *sdk.Session {
	return &sdk.Session{
		Identity: sdk.UserIdentity{ID: 3, Name: "Sam", Email: "sam@example.com", Role: sdk.RoleServicer},
		Token:    "token-123",
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.SaveSession(testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	loaded, err := store.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, testSession(), loaded)
}

func TestFileStore_UsesTwoKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewFileStore(path).SaveSession(testSession()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Len(t, raw, 2)
	assert.JSONEq(t, `"token-123"`, string(raw["token"]))
	assert.JSONEq(t, `{"id":3,"name":"Sam","email":"sam@example.com","role":"SERVICER"}`, string(raw["user"]))
}

func TestFileStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{name: "missing file", missing: true},
		{name: "corrupted json", content: "{not json"},
		{name: "token only", content: `{"token":"abc"}`},
		{name: "user only", content: `{"user":{"email":"a@b.c","role":"USER"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			if !tt.missing {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			_, err := NewFileStore(path).LoadSession()
			require.Error(t, err)
			if tt.missing {
				assert.ErrorIs(t, err, sdk.ErrNoSession)
			} else {
				assert.NotErrorIs(t, err, sdk.ErrNoSession)
			}
		})
	}
}

func TestFileStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.DeleteSession(), "deleting a missing file succeeds")

	require.NoError(t, store.SaveSession(testSession()))
	require.NoError(t, store.DeleteSession())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SessionStoreIntegration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	store := sdk.NewSessionStore(NewFileStore(path))
	assert.Nil(t, store.Load())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "unreadable session file is discarded")
}

func TestSessionFilePath(t *testing.T) {
	t.Setenv(SessionFileEnv, "/custom/session.json")
	assert.Equal(t, "/custom/session.json", SessionFilePath())

	t.Setenv(SessionFileEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/rmsctl/session.json", SessionFilePath())
	assert.Equal(t, "/xdg/rmsctl/session.json", NewFileStore("").Path())
}
