package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mealmate/internal/logging"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mealmate.log")
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hello", slog.String("k", "v"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"msg":"hello"`) || !strings.Contains(line, `"level":"debug"`) {
		t.Fatalf("unexpected log line: %s", line)
	}
	if !strings.Contains(line, `"ts":`) {
		t.Fatalf("expected ts key, got %s", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithContextAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := logging.WithRequestID(context.Background(), "req-123")
	if id, ok := logging.RequestIDFromContext(ctx); !ok || id != "req-123" {
		t.Fatalf("unexpected request id: %q %v", id, ok)
	}

	logging.WithContext(ctx, base).Info("fetch")
	if !strings.Contains(buf.String(), "correlation_id=req-123") {
		t.Fatalf("expected correlation id in output, got %q", buf.String())
	}
}

func TestRequestIDMissing(t *testing.T) {
	if _, ok := logging.RequestIDFromContext(context.Background()); ok {
		t.Fatal("expected no request id")
	}
}
