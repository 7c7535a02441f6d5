// Package session defines the per-learner key/value record and the storage contract
// every backend satisfies.
package session

import (
	"context"
	"encoding/json"
	"time"
)

// Values is the opaque key/value mapping attached to a learner session.
// Values are stored as raw JSON so backends never need to know their shape.
type Values map[string]json.RawMessage

// Get returns the raw value stored under key.
func (v Values) Get(key string) ([]byte, bool) {
	raw, ok := v[key]
	return raw, ok
}

// Set stores a raw JSON value under key.
func (v Values) Set(key string, value []byte) {
	v[key] = json.RawMessage(value)
}

// Delete removes key if present.
func (v Values) Delete(key string) {
	delete(v, key)
}

// Record is one stored session.
type Record struct {
	ID        string
	Values    Values
	ExpiresAt time.Time
}

// NewRecord creates an empty record for id.
func NewRecord(id string) *Record {
	return &Record{ID: id, Values: Values{}}
}

// Store persists session records. Load returns a fresh empty record for unknown or
// expired ids. Save upserts and pushes the expiry forward by the store's duration.
type Store interface {
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// Encode marshals values for backends that store the whole record as one blob.
func Encode(v Values) ([]byte, error) {
	if v == nil {
		v = Values{}
	}
	return json.Marshal(v)
}

// Decode is the inverse of Encode. An empty payload yields empty values.
func Decode(data []byte) (Values, error) {
	v := Values{}
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
