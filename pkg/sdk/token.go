package sdk

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a JWT bearer token without verifying its
// signature; verification is the backend's job. Opaque tokens, and JWTs
// without exp, report ok=false.
func TokenExpiry(token string) (expiresAt time.Time, ok bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the session's token carries an exp claim that is
// not after now.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	expiresAt, ok := TokenExpiry(s.Token)
	if !ok {
		return false
	}
	return !now.Before(expiresAt)
}
