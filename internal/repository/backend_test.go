package repository

import (
	"context"
	"path/filepath"
	"testing"

	"projectilelab/internal/config"
	"projectilelab/internal/logger"
)

func TestOpenSessionBackend(t *testing.T) {
	cfg := config.Default()
	cfg.SessionBackend = "memory"

	backend, err := OpenSessionBackend(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("OpenSessionBackend(memory) error = %v", err)
	}
	defer backend.Close()

	if backend.Name != "memory" {
		t.Errorf("Name = %v, want memory", backend.Name)
	}
	if err := backend.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	cfg.SessionBackend = "etcd"
	if _, err := OpenSessionBackend(cfg, logger.NewNop()); err == nil {
		t.Error("OpenSessionBackend(etcd) error = nil, want error")
	}
}

func TestOpenSQLSessionBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "backend.db")
	cfg.MigrationsPath = "../../migrations"

	backend, err := OpenSessionBackend(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("OpenSessionBackend(sql) error = %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	rec, err := backend.Store.Load(ctx, "learner")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rec.Values.Set("level", []byte("2"))
	if err := backend.Store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := backend.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
