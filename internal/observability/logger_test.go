package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "erdash", "production", "warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	logger.Info().Msg("dropped")
	logger.Warn().Str("key", "er_staff").Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "erdash" || entry["message"] != "kept" || entry["key"] != "er_staff" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatalf("expected caller field in %v", entry)
	}
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "erdash", "development", "")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger(&bytes.Buffer{}, "erdash", "production", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestInitLoggerSetsGlobal(t *testing.T) {
	logger, err := InitLogger("erdash", "production", "debug")
	if err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	if logger.GetLevel() != GetLogger().GetLevel() {
		t.Fatalf("global logger level %v, want %v", GetLogger().GetLevel(), logger.GetLevel())
	}
}
