package repository

import (
	"context"
	"fmt"
	"strings"

	"projectilelab/internal/config"
	"projectilelab/internal/database"
	"projectilelab/internal/logger"
	"projectilelab/internal/session"
)

// SessionBackend is an opened session store plus the connection behind it
type SessionBackend struct {
	Name  string
	Store session.Store
	Ping  func(ctx context.Context) error
	Close func() error
}

// OpenSessionBackend opens the session store selected by cfg.SessionBackend.
// The SQL backend runs pending migrations before use.
func OpenSessionBackend(cfg *config.Config, log *logger.Logger) (*SessionBackend, error) {
	switch strings.ToLower(cfg.SessionBackend) {
	case "sql":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		applied, err := db.RunMigrations(cfg.MigrationsPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, name := range applied {
			log.Info("applied migration", "file", name)
		}
		log.Info("session store ready", "backend", "sql", "database_type", cfg.DatabaseType)
		return &SessionBackend{
			Name:  "sql",
			Store: NewSessionRepository(db, cfg.SessionDuration),
			Ping:  db.PingContext,
			Close: db.Close,
		}, nil

	case "redis":
		repo, err := NewRedisSessionRepository(cfg.RedisAddr, cfg.RedisPrefix, cfg.SessionDuration)
		if err != nil {
			return nil, err
		}
		log.Info("session store ready", "backend", "redis", "addr", cfg.RedisAddr)
		return &SessionBackend{
			Name:  "redis",
			Store: repo,
			Ping:  func(ctx context.Context) error { return repo.rdb.Ping(ctx).Err() },
			Close: repo.Close,
		}, nil

	case "memory":
		log.Warn("using in-memory session store; progress is lost on restart")
		return &SessionBackend{
			Name:  "memory",
			Store: session.NewMemoryStore(cfg.SessionDuration),
			Ping:  func(context.Context) error { return nil },
			Close: func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported session backend: %s", cfg.SessionBackend)
	}
}
