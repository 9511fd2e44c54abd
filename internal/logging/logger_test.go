package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tasknotify/internal/logging"
)

func TestConsoleFormatIncludesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("message sent", logging.String("recipient", "alice"), logging.Int("attempt", 1))

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "message sent") {
		t.Fatalf("unexpected console output: %q", out)
	}
	if !strings.Contains(out, "recipient=alice") || !strings.Contains(out, "attempt=1") {
		t.Fatalf("missing attrs in console output: %q", out)
	}
}

func TestJSONFormatIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("tick", logging.Int("matched", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "tick" {
		t.Fatalf("unexpected msg field: %v", record["msg"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug output suppressed, got %q", buf.String())
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
