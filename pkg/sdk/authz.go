package sdk

// SessionReader answers the two authorization questions guards depend on.
// Implementations must read live state so that a sign-out is visible to the
// very next call.
type SessionReader interface {
	IsAuthenticated() bool
	HasRole(role Role) bool
	Current() *Session
}

var _ SessionReader = (*SessionStore)(nil)

// IsAuthenticated reports whether a session is currently held.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// HasRole reports whether a session is held and its identity has role.
// It is false for every role when signed out.
func (s *SessionStore) HasRole(role Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Identity.Role == role
}

// RequireRole returns nil when reader holds role, ErrNotAuthenticated when
// signed out, and an *AuthorizationError otherwise.
func RequireRole(reader SessionReader, role Role) error {
	session := reader.Current()
	if session == nil {
		return ErrNotAuthenticated
	}
	if session.Identity.Role != role {
		return &AuthorizationError{Required: role, Actual: session.Identity.Role}
	}
	return nil
}
