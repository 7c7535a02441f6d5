package handlers

import (
	"context"
	"net/http"
	"time"

	"projectilelab/internal/logger"
	"projectilelab/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "practice_session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.TokenIssuer
	csrf    *security.CSRFGenerator
	limiter *security.RateLimiter
	log     *logger.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenIssuer, csrf *security.CSRFGenerator, limiter *security.RateLimiter, log *logger.Logger) *Middleware {
	return &Middleware{
		tokens:  tokens,
		csrf:    csrf,
		limiter: limiter,
		log:     log,
	}
}

// Session attaches the learner's session id to the request, issuing a new signed
// cookie when the request carries none or an invalid one. The CSRF token for the
// session is returned in a response header.
func (m *Middleware) Session(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if id, err := m.tokens.Parse(cookie.Value); err == nil {
				sessionID = id
			} else {
				m.log.Debug("rejected session cookie", "error", err, "path", r.URL.Path)
			}
		}

		if sessionID == "" {
			sessionID = security.GenerateSessionID()
			token, expires, err := m.tokens.Issue(sessionID)
			if err != nil {
				respondWithError(w, m.log, http.StatusInternalServerError, ErrInternalServerError, "failed to issue session token", err)
				return
			}
			http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, token, expires))
			m.log.Debug("issued session", "session_id", sessionID)
		}

		if token, err := m.csrf.GenerateToken(sessionID); err == nil {
			w.Header().Set(CSRFHeaderName, token)
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect rejects state-changing requests whose CSRF header does not match the session
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := SessionIDFromContext(r.Context())
		if !m.csrf.ValidateToken(sessionID, r.Header.Get(CSRFHeaderName)) {
			m.log.Warn("csrf validation failed", "session_id", sessionID, "path", r.URL.Path)
			respondWithError(w, m.log, http.StatusForbidden, ErrInvalidCSRF, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit limits requests per session
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := SessionIDFromContext(r.Context())
		if !m.limiter.Allow(sessionID) {
			m.log.Warn("rate limit exceeded", "session_id", sessionID, "path", r.URL.Path)
			respondWithError(w, m.log, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware logs HTTP requests
func Logging(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// SessionIDFromContext retrieves the session id set by the Session middleware
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(SessionContextKey).(string)
	return id
}
