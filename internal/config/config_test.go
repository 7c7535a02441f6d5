package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"CONFIG_FILE", "PORT", "DATABASE_TYPE", "DB_PATH", "DATABASE_URL", "MIGRATIONS_PATH",
	"SESSION_BACKEND", "REDIS_ADDR", "REDIS_PREFIX", "SESSION_DURATION", "SESSION_SECRET",
	"LOG_MODE", "TRAJECTORY_SAMPLES", "SUBMIT_RATE_LIMIT", "SUBMIT_RATE_WINDOW",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %v, want 8080", cfg.ServerPort)
	}
	if cfg.SessionBackend != "sql" || cfg.DatabaseType != "sqlite" {
		t.Errorf("backend = %v/%v, want sql/sqlite", cfg.SessionBackend, cfg.DatabaseType)
	}
	if cfg.SessionDuration != 24*time.Hour {
		t.Errorf("SessionDuration = %v, want 24h", cfg.SessionDuration)
	}
	if cfg.TrajectorySamples != 100 {
		t.Errorf("TrajectorySamples = %v, want 100", cfg.TrajectorySamples)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
port: "9090"
session_backend: redis
redis_addr: redis:6379
session_duration: 2h
trajectory_samples: 40
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "7070" {
		t.Errorf("ServerPort = %v, want env override 7070", cfg.ServerPort)
	}
	if cfg.SessionBackend != "redis" || cfg.RedisAddr != "redis:6379" {
		t.Errorf("redis settings = %v/%v, want from file", cfg.SessionBackend, cfg.RedisAddr)
	}
	if cfg.SessionDuration != 2*time.Hour {
		t.Errorf("SessionDuration = %v, want 2h", cfg.SessionDuration)
	}
	if cfg.TrajectorySamples != 40 {
		t.Errorf("TrajectorySamples = %v, want 40", cfg.TrajectorySamples)
	}
	if cfg.DatabasePath != "./projectilelab.db" {
		t.Errorf("DatabasePath = %v, want default kept", cfg.DatabasePath)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"SESSION_BACKEND": "etcd"}},
		{name: "unknown database", env: map[string]string{"DATABASE_TYPE": "oracle"}},
		{name: "postgres without url", env: map[string]string{"DATABASE_TYPE": "postgres"}},
		{name: "bad duration", env: map[string]string{"SESSION_DURATION": "forever"}},
		{name: "bad samples", env: map[string]string{"TRAJECTORY_SAMPLES": "many"}},
		{name: "zero samples", env: map[string]string{"TRAJECTORY_SAMPLES": "0"}},
		{name: "production without secret", env: map[string]string{"LOG_MODE": "prod"}},
		{name: "missing config file", env: map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}
