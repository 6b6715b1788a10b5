package task

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateSnapshot(t *testing.T) {
	s := NewStore()
	if err := ValidateSnapshot(s.Snapshot()); err != nil {
		t.Fatalf("empty snapshot rejected: %v", err)
	}

	mustCreate(t, s, "Buy groceries", "Get milk")
	mustCreate(t, s, "Finish report", "Q4")
	if _, err := s.MarkComplete(2); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if err := ValidateSnapshot(s.Snapshot()); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}
}

func TestValidateSnapshotRejects(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		wantPath string
	}{
		{
			name:     "wrong version",
			snap:     Snapshot{SchemaVersion: 2, Tasks: []Task{}},
			wantPath: "schema_version",
		},
		{
			name:     "nil tasks",
			snap:     Snapshot{SchemaVersion: 1},
			wantPath: "tasks",
		},
		{
			name: "blank title",
			snap: Snapshot{SchemaVersion: 1, Tasks: []Task{
				{ID: 1, Title: " ", Description: "d", Status: StatusIncomplete},
			}},
			wantPath: "tasks[0].title",
		},
		{
			name: "bad status",
			snap: Snapshot{SchemaVersion: 1, Tasks: []Task{
				{ID: 1, Title: "t", Description: "d", Status: "done"},
			}},
			wantPath: "tasks[0].status",
		},
		{
			name: "zero id",
			snap: Snapshot{SchemaVersion: 1, Tasks: []Task{
				{ID: 0, Title: "t", Description: "d", Status: StatusComplete},
			}},
			wantPath: "tasks[0].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot(tt.snap)
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			found := false
			for _, v := range se.Violations {
				if v.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no violation at %q in %v", tt.wantPath, se.Violations)
			}
			if !strings.HasPrefix(err.Error(), "invalid snapshot: ") {
				t.Errorf("message: got %q", err.Error())
			}
		})
	}
}

func TestValidateSnapshotJSONMalformed(t *testing.T) {
	if err := ValidateSnapshotJSON([]byte("{")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/tasks", "tasks"},
		{"/tasks/0/title", "tasks[0].title"},
		{"#/a~1b/2", "a/b[2]"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
