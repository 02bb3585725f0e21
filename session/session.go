// Package session holds the explicit per-login session object injected into
// the components that need a credential. It replaces ambient token lookup:
// created once at login, cleared at logout, never read from global state.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the token payload minted by the auth backend.
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	jwt.RegisteredClaims
}

// Session is the live credential context. Zero value means logged out.
type Session struct {
	Token    string
	UserID   string
	Username string
	Expiry   time.Time
}

// FromToken builds a session from a bearer token. The signature is the
// server's to verify; the client only decodes the claims it needs for
// display and expiry checks.
func FromToken(token string) (*Session, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	s := &Session{
		Token:    token,
		UserID:   claims.UserID,
		Username: claims.Username,
	}
	if claims.ExpiresAt != nil {
		s.Expiry = claims.ExpiresAt.Time
	}
	return s, nil
}

// Valid reports whether the session carries a token that has not expired.
func (s *Session) Valid() bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.Expiry.IsZero() || time.Now().Before(s.Expiry)
}

// Clear logs the session out in place.
func (s *Session) Clear() {
	*s = Session{}
}
