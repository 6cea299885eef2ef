package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level, format Format, buf *bytes.Buffer) *logger {
	l := NewWithWriter(level, format, buf).(*logger)
	l.now = func() time.Time { return time.Date(2026, 2, 18, 10, 30, 0, 0, time.UTC) }
	return l
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"debug", LevelDebug, true},
		{"info", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"WARNING", LevelWarn, true},
		{" error ", LevelError, true},
		{"unknown", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, ok := ParseLevel(tt.input)
			if result != tt.expected || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.input, result, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.level.String(); result != tt.expected {
				t.Errorf("Level.String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		ok       bool
	}{
		{"json", FormatJSON, true},
		{"JSON", FormatJSON, true},
		{"text", FormatText, true},
		{"unknown", FormatText, false},
		{"", FormatText, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, ok := ParseFormat(tt.input)
			if result != tt.expected || ok != tt.ok {
				t.Errorf("ParseFormat(%q) = %v, %v; want %v, %v", tt.input, result, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(LevelDebug, FormatJSON, &buf)

	l.Info("test message", "key1", "value1", "key2", 42, "err", errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if entry["level"] != "info" {
		t.Errorf("Expected level=info, got %v", entry["level"])
	}
	if entry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", entry["msg"])
	}
	if entry["ts"] != "2026-02-18T10:30:00Z" {
		t.Errorf("Expected fixed timestamp, got %v", entry["ts"])
	}
	if entry["key1"] != "value1" {
		t.Errorf("Expected key1=value1, got %v", entry["key1"])
	}
	if entry["key2"] != float64(42) {
		t.Errorf("Expected key2=42, got %v", entry["key2"])
	}
	if entry["err"] != "boom" {
		t.Errorf("Expected err=boom, got %v", entry["err"])
	}
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(LevelDebug, FormatText, &buf)

	l.Info("test message", "zeta", 1, "alpha", "a")

	expected := "2026-02-18T10:30:00Z [info] test message alpha=a zeta=1\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(LevelWarn, FormatText, &buf)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should be filtered")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should be present")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should be present")
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(LevelDebug, FormatJSON, &buf)

	fieldLogger := l.WithFields("rules", "DER", "depth", 2, "dangling")
	fieldLogger.Info("test message", "msg", "overridden?")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if entry["rules"] != "DER" {
		t.Errorf("Expected rules=DER, got %v", entry["rules"])
	}
	if entry["depth"] != float64(2) {
		t.Errorf("Expected depth=2, got %v", entry["depth"])
	}
	if _, ok := entry["dangling"]; ok {
		t.Error("key without value should be dropped")
	}
	if entry["msg"] != "test message" {
		t.Errorf("reserved key overwritten: %v", entry["msg"])
	}
}

func TestLoggerCloneIsolation(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(LevelDebug, FormatJSON, &buf)

	child := l.WithFields("child_field", "value")
	grandchild := child.WithFields("grandchild_field", 1)

	l.Info("parent message")
	var parentEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parentEntry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if _, ok := parentEntry["child_field"]; ok {
		t.Error("Parent logger should not have child's fields")
	}

	buf.Reset()
	child.Info("child message")
	var childEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &childEntry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if childEntry["child_field"] != "value" {
		t.Errorf("Child logger should have its fields, got %v", childEntry["child_field"])
	}
	if _, ok := childEntry["grandchild_field"]; ok {
		t.Error("Child logger should not have grandchild's fields")
	}

	buf.Reset()
	grandchild.Info("grandchild message")
	var grandEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &grandEntry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if grandEntry["child_field"] != "value" || grandEntry["grandchild_field"] != float64(1) {
		t.Errorf("Grandchild should inherit fields, got %v", grandEntry)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asnw.log")
	l, closer, err := New(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Debug("to file", "k", "v")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestNewLogger_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad level", Config{Level: "loud"}},
		{"bad format", Config{Format: "xml"}},
		{"unwritable output", Config{Output: filepath.Join(t.TempDir(), "missing", "x.log")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := New(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}

	l, closer, err := New(Config{})
	if err != nil || l == nil || closer == nil {
		t.Fatalf("empty config should yield a stderr logger, got %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("nop closer returned %v", err)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	if l == nil {
		t.Fatal("NewNop returned nil")
	}

	// These should not panic
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l.WithFields("key", "value") == nil {
		t.Error("WithFields returned nil")
	}
}

func TestLoggerAllLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(LevelDebug, FormatJSON, &buf)

	tests := []struct {
		logFunc func(string, ...interface{})
		level   string
	}{
		{l.Debug, "debug"},
		{l.Info, "info"},
		{l.Warn, "warn"},
		{l.Error, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("test message")

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("Failed to parse JSON output: %v", err)
			}
			if entry["level"] != tt.level {
				t.Errorf("Expected level=%s, got %v", tt.level, entry["level"])
			}
		})
	}
}
