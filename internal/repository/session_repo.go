package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"projectilelab/internal/database"
	"projectilelab/internal/session"
)

// SessionRepository stores learner sessions in the learner_sessions table
type SessionRepository struct {
	db       *database.DB
	duration time.Duration
	now      func() time.Time
}

// NewSessionRepository creates a SQL-backed session store whose records live for
// duration after each save
func NewSessionRepository(db *database.DB, duration time.Duration) *SessionRepository {
	return &SessionRepository{
		db:       db,
		duration: duration,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Load retrieves a session, or an empty one if the id is unknown or expired
func (r *SessionRepository) Load(ctx context.Context, id string) (*session.Record, error) {
	query := `
		SELECT data
		FROM learner_sessions
		WHERE id = ? AND expires_at > ?
	`

	var data string
	err := r.db.QueryRowContext(ctx, query, id, r.now()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return session.NewRecord(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	values, err := session.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session.Record{ID: id, Values: values}, nil
}

// Save inserts or updates a session and extends its expiry
func (r *SessionRepository) Save(ctx context.Context, rec *session.Record) error {
	data, err := session.Encode(rec.Values)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	now := r.now()
	expiresAt := now.Add(r.duration)
	if _, err := r.db.ExecContext(ctx, r.db.Dialect.UpsertSessionQuery(), rec.ID, string(data), expiresAt, now); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	rec.ExpiresAt = expiresAt
	return nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM learner_sessions WHERE id = ?", id)
	return err
}

// DeleteExpired removes every expired session and returns how many were removed
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM learner_sessions WHERE expires_at <= ?", r.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
