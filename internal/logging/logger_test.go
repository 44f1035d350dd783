package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, levelVar))

	logger.Info("added show", String(FieldKind, "ANIME"), Int("total_units", 12))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record["msg"] != "added show" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["kind"] != "ANIME" {
		t.Fatalf("unexpected kind: %v", record["kind"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
}

func TestConsoleHandlerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(logger, "catalog").Info("stored record", String(FieldShowID, "a1"))

	line := buf.String()
	if !strings.Contains(line, "catalog · stored record") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "show_id=a1") {
		t.Fatalf("expected attribute rendering, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be promoted out of attrs, got %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("resolved", String("title", "Demo Show"))

	if !strings.Contains(buf.String(), `title="Demo Show"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}
