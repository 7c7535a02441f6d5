package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projectilelab/internal/config"
	"projectilelab/internal/handlers"
	"projectilelab/internal/logger"
	"projectilelab/internal/practice"
	"projectilelab/internal/repository"
	"projectilelab/internal/security"
	"projectilelab/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	// Open the session store (sql runs migrations)
	backend, err := repository.OpenSessionBackend(cfg, logg)
	if err != nil {
		logg.Fatal("failed to open session store", "backend", cfg.SessionBackend, "error", err)
	}
	defer backend.Close()

	secret := cfg.SessionSecret
	if secret == "" {
		secret, err = security.RandomSecret(32)
		if err != nil {
			logg.Fatal("failed to generate session secret", "error", err)
		}
		logg.Warn("SESSION_SECRET not set; sessions will not survive a restart")
	}

	// Initialize services
	machine := practice.NewMachine(rand.NewSource(time.Now().UnixNano()))
	practiceService := service.NewPracticeService(backend.Store, machine, cfg.TrajectorySamples, logg)
	simulationService := service.NewSimulationService(cfg.TrajectorySamples)

	limiter := security.NewRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateWindow)

	// Initialize handlers
	middleware := handlers.NewMiddleware(
		security.NewTokenIssuer(secret, cfg.SessionDuration),
		security.NewCSRFGenerator(secret),
		limiter,
		logg,
	)
	handler := handlers.NewRouter(
		middleware,
		handlers.NewPracticeHandler(practiceService, logg),
		handlers.NewSimulationHandler(simulationService, logg),
		handlers.NewHealthHandler(map[string]handlers.HealthCheck{"sessions": backend.Ping}, logg),
		logg,
	)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background cleanup of expired sessions and idle rate-limit entries
	go cleanupExpiredSessions(ctx, backend, logg)
	go limiter.Run(ctx, time.Hour)

	go func() {
		logg.Info("server starting", "addr", addr, "session_backend", backend.Name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", "error", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(ctx context.Context, backend *repository.SessionBackend, logg *logger.Logger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := backend.Store.DeleteExpired(ctx)
			if err != nil {
				logg.Error("failed to clean up expired sessions", "error", err)
				continue
			}
			logg.Info("expired sessions cleaned up", "removed", removed)
		}
	}
}
