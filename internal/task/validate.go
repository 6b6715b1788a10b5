package task

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateNonEmptyText trims value and rejects it if nothing is left.
// The error message names field, e.g. "Task title cannot be empty.".
func ValidateNonEmptyText(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &InputError{
			Field: field,
			Msg:   fmt.Sprintf("Task %s cannot be empty.", field),
		}
	}
	return trimmed, nil
}

// ValidateIDInput parses text as a base-10 task ID.
// Existence is not checked here; the store does that.
func ValidateIDInput(text string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &InputError{Field: "id", Msg: "Task ID must be a number."}
	}
	return id, nil
}
