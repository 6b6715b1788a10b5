// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points every config lookup at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{
		"TASKS_UI", "TASKS_FORMAT", "TASKS_LOG_LEVEL", "TASKS_LOG_FORMAT",
		"TASKS_LOG_TIMESTAMPS", "TASKS_LOG_CALLER", "TASKS_LOG_FILE",
	} {
		t.Setenv(name, "")
	}
	project := t.TempDir()
	// Equivalent of t.Chdir (Go 1.24+) for older toolchains.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", project)
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})
	return project
}

// run executes the CLI with input on stdin and returns stdout and stderr.
func run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := RunWithIO(context.Background(), args, IO{
		In:     strings.NewReader(input),
		Out:    &out,
		ErrOut: &errOut,
	})
	return out.String(), errOut.String(), err
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)

	t.Run("shows help with --help flag", func(t *testing.T) {
		out, _, err := run(t, "", "--help")
		if err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out, "Usage:") || !strings.Contains(out, "-log-level") {
			t.Errorf("usage incomplete:\n%s", out)
		}
	})

	t.Run("shows help with -h flag", func(t *testing.T) {
		if _, _, err := run(t, "", "-h"); err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		out, _, err := run(t, "", "--version")
		if err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
		if out != "tasks version dev\n" {
			t.Errorf("version output: %q", out)
		}
	})

	t.Run("shows version with -v flag", func(t *testing.T) {
		if _, _, err := run(t, "", "-v"); err != nil {
			t.Errorf("expected no error with -v, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		out, _, err := run(t, "", "help")
		if err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
		if !strings.Contains(out, "Commands:") {
			t.Errorf("help output:\n%s", out)
		}
	})

	t.Run("version command", func(t *testing.T) {
		out, _, err := run(t, "", "version")
		if err != nil || !strings.Contains(out, "tasks version") {
			t.Errorf("version command: %q, %v", out, err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, errOut, err := run(t, "", "unknown-command")
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
		if !strings.Contains(errOut, "Unknown command: unknown-command") {
			t.Errorf("stderr: %q", errOut)
		}
	})

	t.Run("unknown flag returns error", func(t *testing.T) {
		if _, _, err := run(t, "", "--no-such-flag"); err == nil {
			t.Error("expected error for unknown flag")
		}
	})
}

func TestMenuCommand(t *testing.T) {
	isolate(t)

	t.Run("default command runs the menu", func(t *testing.T) {
		out, _, err := run(t, "1\nBuy groceries\nGet milk\n2\n7\n")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		for _, want := range []string{
			"===== Todo Application =====",
			"Task created successfully with ID: 1",
			"[1] Title: Buy groceries",
			"Thank you for using Todo Application. Goodbye!",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q\n%s", want, out)
			}
		}
	})

	t.Run("explicit menu command", func(t *testing.T) {
		out, _, err := run(t, "7\n", "menu")
		if err != nil || !strings.Contains(out, "Goodbye!") {
			t.Errorf("menu: %v\n%s", err, out)
		}
	})

	t.Run("end of input exits quietly", func(t *testing.T) {
		out, _, err := run(t, "", "menu")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if strings.Contains(out, "Goodbye!") {
			t.Errorf("goodbye on end of input:\n%s", out)
		}
	})

	t.Run("global json format", func(t *testing.T) {
		out, _, err := run(t, "2\n7\n", "--format", "json")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !strings.Contains(out, `"schema_version": 1`) || !strings.Contains(out, `"tasks": []`) {
			t.Errorf("json listing missing:\n%s", out)
		}
	})

	t.Run("menu format flag", func(t *testing.T) {
		out, _, err := run(t, "2\n7\n", "menu", "-format", "json")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !strings.Contains(out, `"schema_version": 1`) {
			t.Errorf("json listing missing:\n%s", out)
		}
	})

	t.Run("invalid menu format", func(t *testing.T) {
		_, _, err := run(t, "7\n", "menu", "-format", "xml")
		if err == nil || !strings.Contains(err.Error(), "invalid format") {
			t.Errorf("expected invalid format error, got %v", err)
		}
	})

	t.Run("extra arguments rejected", func(t *testing.T) {
		if _, _, err := run(t, "7\n", "menu", "extra"); err == nil {
			t.Error("expected error for extra arguments")
		}
	})
}

func TestMenuLogsToFile(t *testing.T) {
	project := isolate(t)
	logPath := filepath.Join(project, "logs", "tasks.log")

	_, errOut, err := run(t, "1\na\nb\n4\n9\n7\n",
		"--log-level", "debug", "--log-format", "logfmt", "--log-file", logPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if errOut != "" {
		t.Errorf("logs leaked to stderr: %q", errOut)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, want := range []string{`msg="task created"`, `msg="operation rejected"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q\n%s", want, data)
		}
	}
}

func TestMenuLogsToStderr(t *testing.T) {
	isolate(t)
	t.Setenv("TASKS_LOG_LEVEL", "debug")

	_, errOut, err := run(t, "1\na\nb\n7\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(errOut, "task created") {
		t.Errorf("stderr missing debug log: %q", errOut)
	}
}

func TestInvalidConfig(t *testing.T) {
	project := isolate(t)

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("TASKS_UI", "gui")
		_, _, err := run(t, "7\n")
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("expected config error, got %v", err)
		}
	})

	t.Run("unknown key in project file", func(t *testing.T) {
		path := filepath.Join(project, "tasks.toml")
		if err := os.WriteFile(path, []byte("colour = \"red\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Remove(path) })
		_, _, err := run(t, "7\n")
		if err == nil || !strings.Contains(err.Error(), "unknown keys") {
			t.Errorf("expected unknown keys error, got %v", err)
		}
	})
}

func TestConfigCommand(t *testing.T) {
	project := isolate(t)

	t.Run("shows values and sources", func(t *testing.T) {
		path := filepath.Join(project, "tasks.toml")
		if err := os.WriteFile(path, []byte("log_level = \"info\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Remove(path) })
		t.Setenv("TASKS_FORMAT", "json")

		out, _, err := run(t, "", "--log-caller", "config")
		if err != nil {
			t.Fatalf("config: %v", err)
		}
		for _, want := range []string{
			"Configuration:",
			"(default)",
			"(project file)",
			"(environment)",
			"(flag)",
			"log_level",
			"tasks.toml",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("config output missing %q\n%s", want, out)
			}
		}
	})

	t.Run("no config files", func(t *testing.T) {
		out, _, err := run(t, "", "config")
		if err != nil {
			t.Fatalf("config: %v", err)
		}
		if !strings.Contains(out, "(none)") {
			t.Errorf("expected (none) for config files\n%s", out)
		}
	})

	t.Run("example", func(t *testing.T) {
		out, _, err := run(t, "", "config", "--example")
		if err != nil {
			t.Fatalf("config --example: %v", err)
		}
		if !strings.Contains(out, "log_level") || !strings.Contains(out, "ui") {
			t.Errorf("example config:\n%s", out)
		}
	})
}

func TestTUIRejectsExtraArgs(t *testing.T) {
	isolate(t)
	if _, _, err := run(t, "", "tui", "extra"); err == nil {
		t.Error("expected error for extra arguments")
	}
}
