package task

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaVersion is the snapshot format version.
const SchemaVersion = 1

const schemaURL = "snapshot.schema.json"

//go:embed snapshot.schema.json
var snapshotSchema []byte

// Snapshot is a point-in-time copy of the task list.
type Snapshot struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`
}

// SchemaError lists the violations found in a snapshot.
type SchemaError struct {
	Violations []Violation
}

// Violation is a single schema violation at a JSON path.
type Violation struct {
	Path    string // e.g. tasks[0].title
	Message string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Path != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", v.Path, v.Message))
		} else {
			parts = append(parts, v.Message)
		}
	}
	return "invalid snapshot: " + strings.Join(parts, "; ")
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(snapshotSchema)); err != nil {
			compileErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile snapshot schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateSnapshot checks snap against the embedded snapshot schema.
// It returns a *SchemaError when the snapshot does not conform.
func ValidateSnapshot(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return ValidateSnapshotJSON(data)
}

// ValidateSnapshotJSON checks raw JSON against the embedded snapshot schema.
func ValidateSnapshotJSON(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return err
		}
		result := &SchemaError{}
		collectViolations(result, ve)
		return result
	}
	return nil
}

func collectViolations(result *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Violations = append(result.Violations, Violation{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(result, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/title" into "tasks[0].title".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
