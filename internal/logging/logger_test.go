package logging_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sokolhessnerlab/csn/internal/logging"
)

func TestNewConsoleFormatsKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("batch complete",
		logging.Int("participants", 12),
		logging.Float64("threshold", 2.5),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("expected level label in %q", line)
	}
	if !strings.Contains(line, "batch complete") {
		t.Fatalf("expected message in %q", line)
	}
	if !strings.Contains(line, "participants=12") || !strings.Contains(line, "threshold=2.5") {
		t.Fatalf("expected key=value attrs in %q", line)
	}
}

func TestConsolePromotesComponentIntoPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "pipeline").Info("started")

	line := buf.String()
	if !strings.Contains(line, "pipeline: started") {
		t.Fatalf("expected component prefix in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component attr should be folded into prefix, got %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("probe", logging.Error(errors.New("boom")))
	line := buf.String()
	if !strings.Contains(line, `"msg":"probe"`) {
		t.Fatalf("expected json message in %q", line)
	}
	if !strings.Contains(line, `"error":"boom"`) {
		t.Fatalf("expected error attr in %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing from %q", out)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing happens")
}
