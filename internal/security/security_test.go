package security

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	id := GenerateSessionID()

	token, expires, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expires = %v, want in the future", expires)
	}

	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != id {
		t.Errorf("Parse() = %v, want %v", got, id)
	}
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	id := GenerateSessionID()
	valid, _, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	otherKey, _, _ := NewTokenIssuer("other-secret", time.Hour).Issue(id)
	notUUID, _, _ := issuer.Issue("level-5-please")

	expiredIssuer := NewTokenIssuer("test-secret", time.Minute)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, _ := expiredIssuer.Issue(id)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong key", otherKey},
		{"subject not a uuid", notUUID},
		{"expired", expired},
		{"tampered", valid[:len(valid)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(tt.token)
			if !errors.Is(err, ErrInvalidSessionToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidSessionToken", err)
			}
		})
	}
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret(32)
	if err != nil {
		t.Fatalf("RandomSecret() error = %v", err)
	}
	b, _ := RandomSecret(32)
	if len(a) != 64 || a == b {
		t.Errorf("RandomSecret() = %q, %q, want two distinct 64-char keys", a, b)
	}
}

func TestCreateSessionCookieSecureFlag(t *testing.T) {
	plain := httptest.NewRequest("GET", "http://example.com/", nil)
	proxied := httptest.NewRequest("GET", "http://example.com/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")

	if c := CreateSessionCookie(plain, "practice_session", "v", time.Now()); c.Secure || !c.HttpOnly {
		t.Errorf("plain cookie Secure=%v HttpOnly=%v, want false/true", c.Secure, c.HttpOnly)
	}
	if c := CreateSessionCookie(proxied, "practice_session", "v", time.Now()); !c.Secure {
		t.Error("proxied cookie Secure = false, want true")
	}
	if c := CreateDeleteCookie(plain, "practice_session"); c.MaxAge != -1 {
		t.Errorf("delete cookie MaxAge = %d, want -1", c.MaxAge)
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.Allow("a") {
			t.Fatalf("Allow(a) #%d = false, want true", i+1)
		}
	}
	if rl.Allow("a") {
		t.Error("Allow(a) over limit = true, want false")
	}
	if !rl.Allow("b") {
		t.Error("Allow(b) = false, want independent budget")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Error("Allow(a) after window = false, want true")
	}

	now = now.Add(5 * time.Minute)
	if removed := rl.Cleanup(); removed != 2 {
		t.Errorf("Cleanup() = %d, want 2", removed)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !rl.Allow("a") {
			t.Fatal("Allow() = false with limiting disabled")
		}
	}
}

func TestCSRFToken(t *testing.T) {
	g := NewCSRFGenerator("secret")
	id := GenerateSessionID()

	token, err := g.GenerateToken(id)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if !g.ValidateToken(id, token) {
		t.Error("ValidateToken() = false for issued token")
	}
	if g.ValidateToken(GenerateSessionID(), token) {
		t.Error("ValidateToken() = true for another session")
	}
	if g.ValidateToken(id, strings.ToUpper(token)) {
		t.Error("ValidateToken() = true for altered token")
	}
	if _, err := g.GenerateToken(""); err == nil {
		t.Error("GenerateToken(\"\") error = nil, want error")
	}
}
