package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIssuer = "projectilelab"

// ErrInvalidSessionToken is returned for tokens that are malformed, expired or
// signed with another key.
var ErrInvalidSessionToken = errors.New("invalid session token")

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// RandomSecret returns a hex-encoded random key of n bytes
func RandomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// TokenIssuer signs and verifies the session cookie value. The token subject is
// the learner's session id.
type TokenIssuer struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewTokenIssuer creates an HS256 token issuer
func NewTokenIssuer(secret string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), duration: duration, now: time.Now}
}

// Issue returns a signed token for sessionID and its expiry time
func (ti *TokenIssuer) Issue(sessionID string) (string, time.Time, error) {
	now := ti.now()
	expires := now.Add(ti.duration)
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expires, nil
}

// Parse verifies a token and returns the session id it carries
func (ti *TokenIssuer) Parse(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)

	claims := &jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSessionToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidSessionToken
	}
	return claims.Subject, nil
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	// Behind reverse proxy
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}

	return r.URL.Scheme == "https"
}

// CreateSessionCookie creates a session cookie with proper security flags
// The Secure flag is automatically set based on the request scheme (HTTPS detection)
func CreateSessionCookie(r *http.Request, name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie creates a cookie for deletion with proper security flags
func CreateDeleteCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
