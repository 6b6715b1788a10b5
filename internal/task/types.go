package task

import (
	"errors"
	"fmt"
)

// Status represents a task status.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusIncomplete, StatusComplete:
		return true
	}
	return false
}

// Task represents a single to-do item.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// Done reports whether the task is complete.
func (t Task) Done() bool {
	return t.Status == StatusComplete
}

// Error kinds returned by the validator and the store.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("task not found")
)

// InputError reports a rejected user-supplied value.
type InputError struct {
	Field string // "title", "description" or "id"
	Msg   string // user-facing message
}

func (e *InputError) Error() string {
	return e.Msg
}

// Unwrap returns ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError reports an ID that matches no task.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task ID %d not found.", e.ID)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
