package sdk

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrNoSession is returned by a CredentialStore when nothing is persisted.
var ErrNoSession = errors.New("no stored session")

// CredentialStore persists a session across process restarts. Implementations
// must write the token and the identity together and remove them together.
type CredentialStore interface {
	SaveSession(session *Session) error
	LoadSession() (*Session, error)
	DeleteSession() error
}

// SessionStore is the single source of truth for who is signed in. It keeps
// the current session in memory and mirrors every change to a CredentialStore.
// Create one per process and pass it to whatever needs it.
type SessionStore struct {
	backend CredentialStore
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current *Session
}

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithSessionLogger sets the logger used for soft failures.
func WithSessionLogger(logger *slog.Logger) SessionStoreOption {
	return func(s *SessionStore) {
		s.logger = logger
	}
}

// WithClock overrides the clock used for token expiry checks.
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *SessionStore) {
		s.now = now
	}
}

// NewSessionStore wraps backend. Nothing is read until Load is called.
func NewSessionStore(backend CredentialStore, opts ...SessionStoreOption) *SessionStore {
	if backend == nil {
		backend = NewMemoryCredentialStore()
	}
	s := &SessionStore{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the in-memory session from durable storage. It fails soft:
// a missing, unreadable, incomplete or expired session leaves the store
// signed out and returns nil. Unusable durable data is removed.
func (s *SessionStore) Load() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	session, err := s.backend.LoadSession()
	switch {
	case errors.Is(err, ErrNoSession):
		return nil
	case err != nil:
		s.logger.Warn("discarding unreadable session", "error", err)
		s.discardLocked()
		return nil
	}

	if err := session.Validate(); err != nil {
		s.logger.Warn("discarding invalid session", "error", err)
		s.discardLocked()
		return nil
	}
	if session.Expired(s.now()) {
		s.logger.Info("stored session expired", "email", session.Identity.Email)
		s.discardLocked()
		return nil
	}

	s.current = session.clone()
	return session.clone()
}

// Save persists session and makes it current. Both the token and the
// identity are written; on failure the in-memory state is left unchanged.
func (s *SessionStore) Save(session *Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("refusing to save session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := session.clone()
	if err := s.backend.SaveSession(stored); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.current = stored
	return nil
}

// Clear signs out. The in-memory session is dropped even when removing the
// durable copy fails; that failure is returned.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.backend.DeleteSession(); err != nil {
		return fmt.Errorf("failed to delete stored session: %w", err)
	}
	return nil
}

// ClearIfToken signs out only when the current session carries token. It
// reports whether a session was dropped; a session established since the
// token was issued is left alone.
func (s *SessionStore) ClearIfToken(token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || token == "" || s.current.Token != token {
		return false, nil
	}
	s.current = nil
	if err := s.backend.DeleteSession(); err != nil {
		return true, fmt.Errorf("failed to delete stored session: %w", err)
	}
	return true, nil
}

// Current returns a copy of the current session, or nil when signed out.
func (s *SessionStore) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

func (s *SessionStore) discardLocked() {
	if err := s.backend.DeleteSession(); err != nil {
		s.logger.Warn("failed to remove stored session", "error", err)
	}
}

// MemoryCredentialStore keeps the session in process memory only.
type MemoryCredentialStore struct {
	mu      sync.Mutex
	session *Session
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)

// NewMemoryCredentialStore returns an empty in-memory store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (m *MemoryCredentialStore) SaveSession(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session.clone()
	return nil
}

func (m *MemoryCredentialStore) LoadSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	return m.session.clone(), nil
}

func (m *MemoryCredentialStore) DeleteSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
