package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell  string
		needle string
	}{
		{shell: "bash", needle: "# tasks bash completion"},
		{shell: "zsh", needle: "#compdef tasks"},
		{shell: "fish", needle: "complete -c tasks"},
		{shell: "BASH", needle: "complete -F _tasks tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out bytes.Buffer
			if err := completionCommand([]string{tt.shell}, &out); err != nil {
				t.Fatalf("completionCommand(%s) error: %v", tt.shell, err)
			}
			if !strings.Contains(out.String(), tt.needle) {
				t.Fatalf("completion output for %s missing %q", tt.shell, tt.needle)
			}
			for _, name := range commandNames() {
				if !strings.Contains(out.String(), name) {
					t.Errorf("completion for %s missing command %q", tt.shell, name)
				}
			}
		})
	}
}

func TestCompletionCommandErrors(t *testing.T) {
	var out bytes.Buffer
	if err := completionCommand(nil, &out); err == nil {
		t.Fatal("expected error for missing shell")
	}
	if err := completionCommand([]string{"tcsh"}, &out); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output on error: %q", out.String())
	}
}

func TestCompletionViaRun(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "", "completion", "zsh")
	if err != nil {
		t.Fatalf("Run completion: %v", err)
	}
	if !strings.HasPrefix(out, "#compdef tasks") {
		t.Errorf("zsh completion: %q", out)
	}
}
