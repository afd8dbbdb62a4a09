package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output honours level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := New("warn", "json", &buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("dropped")
		logger.Warn("kept", "meeting", "Standup")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("expected a single record, got %q", buf.String())
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
			t.Fatalf("expected JSON output: %v", err)
		}
		if record["msg"] != "kept" || record["meeting"] != "Standup" {
			t.Fatalf("unexpected record %v", record)
		}
	})

	t.Run("text is the default format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := New("", "", &buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("hello")
		if !strings.Contains(buf.String(), "msg=hello") {
			t.Fatalf("expected text output, got %q", buf.String())
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		t.Parallel()

		if _, err := New("verbose", "text", io.Discard); err == nil {
			t.Fatalf("expected an error for unknown level")
		}
		if _, err := New("info", "xml", io.Discard); err == nil {
			t.Fatalf("expected an error for unknown format")
		}
	})
}

func TestContextWithLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ContextWithLogger(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Fatalf("expected logger from context")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("expected nil logger for bare context")
	}
	if got := ContextWithLogger(context.Background(), nil); FromContext(got) != nil {
		t.Fatalf("expected nil logger to be ignored")
	}
}
