package handlers

const (
	SessionCookieName = "practice_session"
	CSRFHeaderName    = "X-CSRF-Token"

	maxRequestBodyBytes = 1 << 16

	ErrInvalidJSON         = "Invalid request body"
	ErrInvalidCSRF         = "Invalid CSRF token"
	ErrTooManyRequests     = "Too many submissions, slow down"
	ErrInternalServerError = "Internal server error"
)
