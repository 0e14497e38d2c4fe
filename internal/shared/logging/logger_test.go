package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":         slog.LevelInfo,
		"info":     slog.LevelInfo,
		" DEBUG ":  slog.LevelDebug,
		"dbg":      slog.LevelDebug,
		"warn":     slog.LevelWarn,
		"warning":  slog.LevelWarn,
		"error":    slog.LevelError,
		"err":      slog.LevelError,
		"whatever": slog.LevelInfo,
	}

	for input, expected := range cases {
		if actual := ParseLevel(input); actual != expected {
			t.Fatalf("ParseLevel(%q) expected %v got %v", input, expected, actual)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "json"})
	logger.Info("started", slog.String("component", "gateway"))

	line := buf.String()
	if !strings.Contains(line, `"msg":"started"`) {
		t.Fatalf("expected JSON output, got %s", line)
	}
	if !strings.Contains(line, `"component":"gateway"`) {
		t.Fatalf("expected attribute in output, got %s", line)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "warn"})
	logger.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info suppressed at warn level, got %s", buf.String())
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("expected warn output")
	}
}
