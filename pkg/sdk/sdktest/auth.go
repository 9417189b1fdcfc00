package sdktest

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey struct{}

type authResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func (s *Server) issueLocked(u *User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(u.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func (s *Server) respondWithSession(w http.ResponseWriter, status int, u *User, message string) {
	token, err := s.issueLocked(u)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeOK(w, status, authResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token}, message)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, body.Email) && u.Password == body.Password {
			s.respondWithSession(w, http.StatusOK, u, "Login successful")
			return
		}
	}
	writeFail(w, http.StatusUnauthorized, "Invalid email or password")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Role != "USER" && body.Role != "SERVICER" {
		writeFail(w, http.StatusBadRequest, "Invalid role")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, body.Email) {
			writeFail(w, http.StatusBadRequest, "Email already registered")
			return
		}
	}
	u := &User{ID: s.id(), Name: body.Name, Email: body.Email, Password: body.Password, Role: body.Role}
	s.users[u.ID] = u
	s.respondWithSession(w, http.StatusCreated, u, "Registration successful")
}

// authenticate resolves the bearer token to a user, answering 401 otherwise.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeFail(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		s.mu.Lock()
		id, err := parseToken(s.signingKey, raw)
		var user *User
		if err == nil {
			user = s.users[id]
		}
		s.mu.Unlock()

		if user == nil {
			writeFail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, *user)))
	})
}

func (s *Server) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if currentUser(r).Role != role {
				writeFail(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func currentUser(r *http.Request) User {
	u, _ := r.Context().Value(contextKey{}).(User)
	return u
}
