package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	rec, err := store.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rec.Values) != 0 {
		t.Fatalf("new record values = %v, want empty", rec.Values)
	}

	rec.Values.Set("level", []byte("3"))
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	raw, ok := loaded.Values.Get("level")
	if !ok || string(raw) != "3" {
		t.Errorf("level = %q (present %v), want 3", raw, ok)
	}

	// Mutating a loaded record must not leak into the store until saved.
	loaded.Values.Delete("level")
	again, _ := store.Load(ctx, "abc")
	if _, ok := again.Values.Get("level"); !ok {
		t.Error("unsaved delete affected stored record")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	rec := NewRecord("old")
	rec.Values.Set("level", []byte("2"))
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	fresh := NewRecord("fresh")
	now = now.Add(30 * time.Second)
	if err := store.Save(ctx, fresh); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	now = now.Add(45 * time.Second)
	loaded, err := store.Load(ctx, "old")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Values) != 0 {
		t.Errorf("expired record values = %v, want empty", loaded.Values)
	}

	removed, err := store.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteExpired() = %d, want 1", removed)
	}
}

func TestDecodeEmpty(t *testing.T) {
	v, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) error = %v", err)
	}
	if v == nil || len(v) != 0 {
		t.Errorf("Decode(nil) = %v, want empty map", v)
	}
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("Decode(garbage) error = nil, want error")
	}
}
