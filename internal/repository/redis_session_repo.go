package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"projectilelab/internal/session"
)

// RedisSessionRepository stores each learner session as one JSON string key with a TTL
type RedisSessionRepository struct {
	rdb      *goredis.Client
	prefix   string
	duration time.Duration
}

// NewRedisSessionRepository connects to Redis at addr and verifies the connection
func NewRedisSessionRepository(addr, prefix string, duration time.Duration) (*RedisSessionRepository, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisSessionRepositoryFromClient(rdb, prefix, duration), nil
}

// NewRedisSessionRepositoryFromClient wraps an existing client
func NewRedisSessionRepositoryFromClient(rdb *goredis.Client, prefix string, duration time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, prefix: prefix, duration: duration}
}

func (r *RedisSessionRepository) key(id string) string {
	return r.prefix + id
}

// Load retrieves a session, or an empty one if the key is missing or expired
func (r *RedisSessionRepository) Load(ctx context.Context, id string) (*session.Record, error) {
	data, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.NewRecord(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	values, err := session.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session.Record{ID: id, Values: values}, nil
}

// Save writes the session and resets its TTL
func (r *RedisSessionRepository) Save(ctx context.Context, rec *session.Record) error {
	data, err := session.Encode(rec.Values)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(rec.ID), data, r.duration).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	rec.ExpiresAt = time.Now().Add(r.duration)
	return nil
}

// Delete removes a session
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, r.key(id)).Err()
}

// DeleteExpired is a no-op: Redis evicts keys when their TTL lapses
func (r *RedisSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// Close closes the Redis connection
func (r *RedisSessionRepository) Close() error {
	return r.rdb.Close()
}
