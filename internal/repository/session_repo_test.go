package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"projectilelab/internal/database"
	"projectilelab/internal/session"
)

func setupSessionRepo(t *testing.T, duration time.Duration) (*SessionRepository, *database.DB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return NewSessionRepository(db, duration), db
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo, _ := setupSessionRepo(t, time.Hour)
	ctx := context.Background()

	rec, err := repo.Load(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rec.Values) != 0 {
		t.Fatalf("Load(unknown) values = %v, want empty", rec.Values)
	}

	rec.Values.Set("level", []byte("3"))
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rec.Values.Set("level", []byte("4"))
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save() second error = %v", err)
	}

	got, err := repo.Load(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if raw, _ := got.Values.Get("level"); string(raw) != "4" {
		t.Errorf("level = %s, want 4", raw)
	}

	if err := repo.Delete(ctx, "learner-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err = repo.Load(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Load() after delete error = %v", err)
	}
	if len(got.Values) != 0 {
		t.Errorf("values after delete = %v, want empty", got.Values)
	}
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo, _ := setupSessionRepo(t, time.Minute)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	for _, id := range []string{"a", "b"} {
		rec := session.NewRecord(id)
		rec.Values.Set("level", []byte("2"))
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	now = now.Add(30 * time.Second)
	fresh := session.NewRecord("c")
	if err := repo.Save(ctx, fresh); err != nil {
		t.Fatalf("Save(c) error = %v", err)
	}

	now = now.Add(45 * time.Second)
	rec, err := repo.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rec.Values) != 0 {
		t.Errorf("expired session values = %v, want empty", rec.Values)
	}

	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteExpired() = %d, want 2", n)
	}

	n, err = repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() second error = %v", err)
	}
	if n != 0 {
		t.Errorf("DeleteExpired() second = %d, want 0", n)
	}
}
