package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Interstellar-code/taskmaster/internal/errors"
)

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("expansion started", "run_id", "abc", "candidates", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "expansion started" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["run_id"] != "abc" {
		t.Errorf("run_id = %v", entry["run_id"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("levels below warn should be filtered: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestWithErrorAddsCode(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	err := errors.New(errors.ErrCodeExpandAnalysis, "analysis failed").
		WithSuggestion("retry later")
	logger.WithError(err).Error("falling back to heuristic")

	out := buf.String()
	if !strings.Contains(out, "EXPAND-001") {
		t.Errorf("error_code missing: %s", out)
	}
	if !strings.Contains(out, "retry later") {
		t.Errorf("suggestions missing: %s", out)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("debug") != LevelDebug || ParseLevel("nonsense") != LevelInfo {
		t.Error("ParseLevel defaults wrong")
	}
	if ParseFormat("text") != FormatText || ParseFormat("nonsense") != FormatJSON {
		t.Error("ParseFormat defaults wrong")
	}
}
