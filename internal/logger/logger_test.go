package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, level Level, fn func(l *Logger)) []LogEntry {
	t.Helper()

	path := filepath.Join(t.TempDir(), "log.jsonl")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating log file: %v", err)
	}

	fn(New(level, f))
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	entries := captureOutput(t, LevelWarn, func(l *Logger) {
		l.Debug("debug msg", nil)
		l.Info("info msg", nil)
		l.Warn("warn msg", nil)
		l.Error("error msg", nil, os.ErrNotExist)
	})

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("levels = %s, %s", entries[0].Level, entries[1].Level)
	}
	if entries[1].Error == "" {
		t.Errorf("error entry missing error string")
	}
}

func TestLogger_Fields(t *testing.T) {
	entries := captureOutput(t, LevelInfo, func(l *Logger) {
		l.Info("dataset loaded", Fields{"ranges": 42})
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if got, ok := entries[0].Fields["ranges"].(float64); !ok || got != 42 {
		t.Errorf("fields = %+v, want ranges=42", entries[0].Fields)
	}
	if entries[0].Timestamp == "" {
		t.Errorf("timestamp missing")
	}
}

func TestCounters(t *testing.T) {
	c := NewCounters()
	c.Incr("requests")
	c.Incr("requests")
	c.Incr("errors")

	if got := c.Get("requests"); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
	snap := c.Snapshot()
	if snap["requests"] != 2 || snap["errors"] != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if got := c.Get("missing"); got != 0 {
		t.Errorf("missing counter = %d, want 0", got)
	}
}
