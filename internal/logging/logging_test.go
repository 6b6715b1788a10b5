package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"text", log.TextFormatter},
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormatter(tt.input); got != tt.want {
				t.Errorf("ParseFormatter(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", "task_id", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "task_id=3") {
		t.Errorf("warn line missing: %q", out)
	}
	if !strings.Contains(out, DefaultPrefix) {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "debug", Format: "json", Prefix: "test"})
	logger.Debug("task created", "task_id", 1)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "task created" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["task_id"] != float64(1) {
		t.Errorf("task_id: got %v", entry["task_id"])
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.log")

	var fallback bytes.Buffer
	logger, closeFn, err := Open(Options{Level: "info", File: path}, &fallback)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Info("to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing line: %q", data)
	}
	if fallback.Len() != 0 {
		t.Errorf("fallback written while file set: %q", fallback.String())
	}
}

func TestOpenFallback(t *testing.T) {
	var fallback bytes.Buffer
	logger, closeFn, err := Open(Options{Level: "info"}, &fallback)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	logger.Info("to fallback")
	if !strings.Contains(fallback.String(), "to fallback") {
		t.Errorf("fallback missing line: %q", fallback.String())
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must not be nil.
	logger := Discard()
	if logger == nil {
		t.Fatal("Discard returned nil")
	}
	logger.Error("dropped")
}
