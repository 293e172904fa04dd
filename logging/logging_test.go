package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestInitLoggingFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitLogging(&buf, "WARNING"); err != nil {
		t.Fatalf("InitLogging: %v", err)
	}
	defer InitLogging(os.Stderr, "INFO")

	Log.Info("hidden")
	Log.Warning("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at WARNING level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warning record missing: %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("level tag missing: %q", out)
	}
}

func TestInitLoggingRejectsUnknownLevel(t *testing.T) {
	if err := InitLogging(&bytes.Buffer{}, "LOUD"); err == nil {
		t.Error("expected error for unknown level")
	}
}
