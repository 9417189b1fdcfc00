package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

const sessionFile = "session.json"

// SessionFileEnv overrides the session file location.
const SessionFileEnv = "RMS_SESSION_FILE"

// document is the on-disk layout: the bearer token and the identity under
// two stable keys, always written and removed together.
type document struct {
	Token string            `json:"token"`
	User  *sdk.UserIdentity `json:"user"`
}

// FileStore implements sdk.CredentialStore using a JSON file.
type FileStore struct {
	path string
}

// Ensure FileStore implements sdk.CredentialStore at compile time.
var _ sdk.CredentialStore = (*FileStore)(nil)

// NewFileStore returns a store at path; an empty path selects SessionFilePath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = SessionFilePath()
	}
	return &FileStore{path: path}
}

// SessionFilePath returns $RMS_SESSION_FILE, or session.json in the rmsctl
// config directory.
func SessionFilePath() string {
	if envPath := os.Getenv(SessionFileEnv); envPath != "" {
		return envPath
	}
	return filepath.Join(config.ConfigDir(), sessionFile)
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// SaveSession writes the session atomically with owner-only permissions.
func (s *FileStore) SaveSession(session *sdk.Session) error {
	identity := session.Identity
	data, err := json.MarshalIndent(document{Token: session.Token, User: &identity}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary session file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to restrict session file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session file %s: %w", s.path, err)
	}
	return nil
}

// LoadSession reads the session file. A missing file is sdk.ErrNoSession;
// a file lacking either key is an error.
func (s *FileStore) LoadSession() (*sdk.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, sdk.ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupted session file %s: %w", s.path, err)
	}
	if doc.Token == "" || doc.User == nil {
		return nil, fmt.Errorf("incomplete session file %s", s.path)
	}
	return &sdk.Session{Identity: *doc.User, Token: doc.Token}, nil
}

// DeleteSession removes the session file. Removing a missing file succeeds.
func (s *FileStore) DeleteSession() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session file %s: %w", s.path, err)
	}
	return nil
}
