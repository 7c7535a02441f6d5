package handlers

import (
	"context"
	"net/http"
	"time"

	"projectilelab/internal/logger"
)

// HealthCheck reports whether one dependency is usable
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness of the server and its session backend
type HealthHandler struct {
	checks map[string]HealthCheck
	log    *logger.Logger
}

// NewHealthHandler creates a health handler running the given named checks
func NewHealthHandler(checks map[string]HealthCheck, log *logger.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, log: log}
}

// Check handles GET /healthz
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn("health check failed", "check", name, "error", err)
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := map[string]interface{}{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	writeJSON(w, status, body)
}
