package sdk

import (
	"context"
	"net/http"
	"strings"
)

// Credentials is the input of a login or registration attempt. Name and Role
// are only used for registration.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Validate reports the first missing field for a login or, when register is
// true, a registration.
func (c Credentials) Validate(register bool) error {
	if register && strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if c.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	if register && !c.Role.Valid() {
		return &ValidationError{Field: "role", Message: "choose a role: USER or SERVICER"}
	}
	return nil
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges an email and password for a session. It does not persist
// anything; see Gateway for the stateful flow.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	creds := Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := creds.Validate(false); err != nil {
		return nil, err
	}
	payload, err := call[authPayload](ctx, c, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginBody{Email: creds.Email, Password: creds.Password},
	})
	if err != nil {
		return nil, asAuthError(err, "Invalid email or password")
	}
	return checkedSession(payload)
}

// Register creates an account with a fixed role and returns its session.
func (c *Client) Register(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Name = strings.TrimSpace(creds.Name)
	creds.Email = strings.TrimSpace(creds.Email)
	if err := creds.Validate(true); err != nil {
		return nil, err
	}
	payload, err := call[authPayload](ctx, c, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   creds,
	})
	if err != nil {
		return nil, asAuthError(err, "Registration failed")
	}
	return checkedSession(payload)
}

// asAuthError turns backend-reported failures into AuthError. Transport
// failures pass through unchanged.
func asAuthError(err error, fallback string) error {
	apiErr, ok := isAPIError(err)
	if !ok {
		return err
	}
	msg := apiErr.Message
	if msg == "" {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			return err
		}
		msg = fallback
	}
	return &AuthError{Message: msg}
}

func checkedSession(payload authPayload) (*Session, error) {
	session := payload.session()
	if err := session.Validate(); err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "server returned an incomplete session: " + err.Error()}
	}
	return session, nil
}
