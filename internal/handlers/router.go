package handlers

import (
	"net/http"

	"projectilelab/internal/logger"
)

// NewRouter registers every route and wraps the mux with request logging
func NewRouter(m *Middleware, practiceHandler *PracticeHandler, simulationHandler *SimulationHandler, healthHandler *HealthHandler, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Free simulation
	mux.HandleFunc("POST /api/simulate", simulationHandler.Simulate)

	// Practice routes
	mux.HandleFunc("GET /api/level", m.Session(practiceHandler.GetLevel))
	mux.HandleFunc("GET /api/practice", m.Session(practiceHandler.GetPractice))
	mux.HandleFunc("POST /api/practice/submit", m.Session(m.CSRFProtect(m.RateLimit(practiceHandler.Submit))))
	mux.HandleFunc("POST /api/practice/reload", m.Session(m.CSRFProtect(practiceHandler.Reload)))
	mux.HandleFunc("POST /api/practice/reset", m.Session(m.CSRFProtect(practiceHandler.Reset)))
	mux.HandleFunc("POST /api/practice/retreat", m.Session(m.CSRFProtect(practiceHandler.Retreat)))

	mux.HandleFunc("GET /healthz", healthHandler.Check)

	return Logging(log, mux)
}
