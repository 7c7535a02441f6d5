package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Records do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	records  map[string]memoryEntry
	duration time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store whose records live for duration after each save.
func NewMemoryStore(duration time.Duration) *MemoryStore {
	return &MemoryStore{
		records:  make(map[string]memoryEntry),
		duration: duration,
		now:      time.Now,
	}
}

// Load returns a copy of the stored record so callers can mutate it freely.
func (s *MemoryStore) Load(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	entry, ok := s.records[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(entry.expiresAt) {
		return NewRecord(id), nil
	}

	values, err := Decode(entry.data)
	if err != nil {
		return nil, err
	}
	return &Record{ID: id, Values: values, ExpiresAt: entry.expiresAt}, nil
}

func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	data, err := Encode(rec.Values)
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.duration)
	s.mu.Lock()
	s.records[rec.ID] = memoryEntry{data: data, expiresAt: expiresAt}
	s.mu.Unlock()

	rec.ExpiresAt = expiresAt
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.records, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	now := s.now()
	var removed int64

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.records {
		if !now.Before(entry.expiresAt) {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}
