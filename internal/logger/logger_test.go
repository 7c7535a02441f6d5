package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
		check func(interface{}) bool
	}{
		{
			name:  "session id hashed",
			key:   "session_id",
			value: "0b5c4f0e-8a8f-4f43-9a0b-7f7e6b0f4c11",
			check: func(v interface{}) bool {
				s, ok := v.(string)
				return ok && strings.HasPrefix(s, "hash:") && !strings.Contains(s, "0b5c4f0e")
			},
		},
		{
			name:  "token redacted",
			key:   "session_token",
			value: "eyJhbGciOiJIUzI1NiJ9.payload.sig",
			check: func(v interface{}) bool { return v == "[REDACTED]" },
		},
		{
			name:  "level untouched",
			key:   "level",
			value: 3,
			check: func(v interface{}) bool { return v == 3 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sanitizeKVs([]interface{}{tt.key, tt.value})
			if len(out) != 2 {
				t.Fatalf("sanitizeKVs() returned %d items, want 2", len(out))
			}
			if !tt.check(out[1]) {
				t.Errorf("sanitizeKVs(%q) value = %v", tt.key, out[1])
			}
		})
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"level", 2, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Errorf("sanitizeKVs() = %v, want dangling key kept", out)
	}
}

func TestLoggerWritesSanitizedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core)).With("component", "test")

	log.Info("level up", "session_id", "abc", "level", 2)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "test" {
		t.Errorf("component = %v, want test", fields["component"])
	}
	if fields["session_id"] == "abc" {
		t.Error("session_id logged in clear")
	}
	if fields["level"] != int64(2) {
		t.Errorf("level = %v (%T), want 2", fields["level"], fields["level"])
	}
}
