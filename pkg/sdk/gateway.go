package sdk

import (
	"context"
	"log/slog"
)

// Authenticator performs the backend side of login and registration.
// *Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, creds Credentials) (*Session, error)
}

var _ Authenticator = (*Client)(nil)

// Gateway bridges backend authentication calls and the SessionStore. It is
// the only component that mutates the store.
type Gateway struct {
	auth   Authenticator
	store  *SessionStore
	logger *slog.Logger
}

// NewGateway wires an authenticator to a session store.
func NewGateway(auth Authenticator, store *SessionStore, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{auth: auth, store: store, logger: logger}
}

// Store returns the session store the gateway mutates.
func (g *Gateway) Store() *SessionStore {
	return g.store
}

// Login authenticates and, on success, saves the session. On failure the
// store is left untouched and the error carries a human-readable message
// (see UserMessage).
func (g *Gateway) Login(ctx context.Context, email, password string) (*Session, error) {
	session, err := g.Authenticate(ctx, Credentials{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	if err := g.Establish(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Register creates an account with the chosen role and saves its session.
func (g *Gateway) Register(ctx context.Context, name, email, password string, role Role) (*Session, error) {
	session, err := g.Authenticate(ctx, Credentials{Name: name, Email: email, Password: password, Role: role}, true)
	if err != nil {
		return nil, err
	}
	if err := g.Establish(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Authenticate performs the backend exchange only: a registration when
// register is set, a login otherwise. The store is not touched, so callers
// that may be cancelled can decide later whether to Establish the result.
func (g *Gateway) Authenticate(ctx context.Context, creds Credentials, register bool) (*Session, error) {
	var (
		session *Session
		err     error
	)
	if register {
		session, err = g.auth.Register(ctx, creds)
	} else {
		session, err = g.auth.Login(ctx, creds.Email, creds.Password)
	}
	if err != nil {
		g.logger.Debug("authentication failed", "email", creds.Email, "register", register, "error", err)
		return nil, err
	}
	return session, nil
}

// Establish makes session the current one and persists it.
func (g *Gateway) Establish(session *Session) error {
	if err := g.store.Save(session); err != nil {
		return err
	}
	g.logger.Info("signed in", "email", session.Identity.Email, "role", session.Identity.Role)
	return nil
}

// Logout signs out locally. It never talks to the backend and never fails
// from the caller's point of view: a storage error is logged and the
// in-memory session is gone regardless.
func (g *Gateway) Logout() {
	if err := g.store.Clear(); err != nil {
		g.logger.Warn("session cleared in memory but stored copy could not be removed", "error", err)
		return
	}
	g.logger.Info("signed out")
}

// ExpireToken signs out after the backend rejected token. A session
// established with a different token since then is kept.
func (g *Gateway) ExpireToken(token string) {
	cleared, err := g.store.ClearIfToken(token)
	switch {
	case err != nil:
		g.logger.Warn("session cleared in memory but stored copy could not be removed", "error", err)
	case cleared:
		g.logger.Info("backend rejected the session token; signed out")
	default:
		g.logger.Debug("ignoring rejection of a token that is no longer current")
	}
}
