package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactsSecretLookingKeys(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromCore(core).With("service", "render", "apiToken", "abc123")
	log.Info("request", "Password", "hunter2", "format", "quiz")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["apiToken"] != "[REDACTED]" || fields["Password"] != "[REDACTED]" {
		t.Fatalf("secrets not redacted: %v", fields)
	}
	if fields["format"] != "quiz" || fields["service"] != "render" {
		t.Fatalf("plain fields must pass through: %v", fields)
	}
}

func TestRedactLeavesInputUntouched(t *testing.T) {
	kv := []any{"token", "x", "page", 2}
	out := redact(kv)
	if kv[1] != "x" {
		t.Fatalf("redact must not mutate caller slice")
	}
	if out[1] != "[REDACTED]" || out[3] != 2 {
		t.Fatalf("unexpected redaction result %v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		l.Debug("ok")
	}
}
