package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRedisSessionRepository(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	repo, err := NewRedisSessionRepository(addr, "projectilelab:test:", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisSessionRepository() error = %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	id := uuid.New().String()
	defer repo.Delete(ctx, id)

	rec, err := repo.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rec.Values.Set("level", []byte("5"))
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if raw, _ := got.Values.Get("level"); string(raw) != "5" {
		t.Errorf("level = %s, want 5", raw)
	}

	ttl, err := repo.rdb.TTL(ctx, repo.key(id)).Result()
	if err != nil {
		t.Fatalf("TTL() error = %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want within (0, 1m]", ttl)
	}

	if n, err := repo.DeleteExpired(ctx); err != nil || n != 0 {
		t.Errorf("DeleteExpired() = %d, %v, want 0, nil", n, err)
	}
}

func TestNewRedisSessionRepositoryRequiresAddr(t *testing.T) {
	if _, err := NewRedisSessionRepository("", "p:", time.Minute); err == nil {
		t.Error("NewRedisSessionRepository(\"\") error = nil, want error")
	}
}
