package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"chorale/internal/logging"
)

func TestConsoleHandlerFormatsSingleLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "generate")
	logger.Info("document written", logging.String(logging.FieldPath, "out.pro6"), logging.Int("slides", 3))

	line := strings.TrimRight(buf.String(), "\n")
	if strings.Count(line, "\n") != 0 {
		t.Fatalf("expected a single line, got %q", buf.String())
	}
	if !strings.Contains(line, " INFO generate: document written") {
		t.Fatalf("unexpected header: %q", line)
	}
	if !strings.Contains(line, "path=out.pro6") || !strings.Contains(line, "slides=3") {
		t.Fatalf("missing attributes: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Warn("skipping", logging.String("reason", "no media found"))

	if !strings.Contains(buf.String(), `reason="no media found"`) {
		t.Fatalf("value with spaces must be quoted: %q", buf.String())
	}
}

func TestJSONHandlerRenamesCoreKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("probe", logging.String(logging.FieldFormat, "pptx"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "probe" || entry["level"] != "debug" {
		t.Fatalf("unexpected core keys: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatal("timestamp must be emitted as ts")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level, got %q", buf.String())
	}
	logger.Error("loud")
	if !strings.Contains(buf.String(), "ERROR loud") {
		t.Fatalf("error must pass the filter: %q", buf.String())
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("no-op logger must report disabled at every level")
	}
}
