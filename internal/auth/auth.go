// Package auth implements the optional relay-level session gate. When a
// session secret is configured, callers must present a short-lived HS256
// session token in addition to their delegated GitHub credential; with no
// secret configured the gate is a no-op and the relay is open.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionLifetime defines how long minted session tokens are valid.
const SessionLifetime = time.Hour

var (
	// ErrTokenExpired is returned when the session token has expired.
	ErrTokenExpired = errors.New("session token expired")

	// ErrInvalidToken is returned when the session token is invalid for any reason.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrMissingAuthHeader is returned when the Authorization header is
	// absent or not a bearer token.
	ErrMissingAuthHeader = errors.New("invalid or missing authorization header")
)

// SessionClaims are the JWT claims carried by a relay session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	GithubUserLogin string `json:"github_user_login"`
}

// Gate validates relay session tokens. A Gate with an empty secret accepts
// every request.
type Gate struct {
	secret   string
	disabled bool
}

// NewGate creates a session gate. Setting disabled bypasses validation even
// when a secret is configured, mirroring the DISABLE_AUTH escape hatch.
func NewGate(secret string, disabled bool) *Gate {
	return &Gate{secret: secret, disabled: disabled}
}

// Enabled reports whether the gate will actually validate anything.
func (g *Gate) Enabled() bool {
	return g.secret != "" && !g.disabled
}

// Authorize checks the request's Authorization header against the session
// secret. It returns nil when the gate is disabled or no secret is set.
func (g *Gate) Authorize(r *http.Request) error {
	if !g.Enabled() {
		return nil
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ErrMissingAuthHeader
	}

	_, err := ValidateSessionToken(strings.TrimPrefix(header, "Bearer "), g.secret)
	return err
}

// CreateSessionToken mints a signed session token for the given login.
func CreateSessionToken(login, secret string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        now.Format(time.RFC3339Nano),
		},
		GithubUserLogin: login,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// ValidateSessionToken validates and parses a session token.
func ValidateSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
