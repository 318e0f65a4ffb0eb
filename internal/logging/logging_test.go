package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("refreshed", "source", "weather")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["service"] != "beach-terminal" || rec["source"] != "weather" || rec["msg"] != "refreshed" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "beach.log")

	log, closeFn, err := Open(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	log.Warn("cache read failed", "key", "weather:kitsilano")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"key":"weather:kitsilano"`) {
		t.Errorf("log file missing record: %s", data)
	}
}
