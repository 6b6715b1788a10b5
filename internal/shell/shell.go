// Package shell runs the line-oriented text menu over a task store.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/task"
)

// Menu options.
const (
	OptionAdd        = "1"
	OptionView       = "2"
	OptionUpdate     = "3"
	OptionDelete     = "4"
	OptionComplete   = "5"
	OptionIncomplete = "6"
	OptionExit       = "7"
)

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for operation traces.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.log = l
		}
	}
}

// WithJSON renders the task list as a JSON snapshot instead of text.
func WithJSON(enabled bool) Option {
	return func(s *Shell) {
		s.json = enabled
	}
}

// Shell reads menu choices from an input stream and applies them to a store.
// It is the only place where tasks meet I/O. Run reads ahead of the line it
// is handling, so the input stream belongs to the Shell once Run starts.
type Shell struct {
	store *task.Store
	in    io.Reader
	out   io.Writer
	log   *log.Logger
	json  bool

	lines <-chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// errEndOfInput ends the loop when the input stream is exhausted.
var errEndOfInput = errors.New("end of input")

// New creates a shell over store reading from in and writing to out.
func New(store *task.Store, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store: store,
		in:    in,
		out:   out,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops over the menu until the user exits, input ends, or ctx is
// cancelled. Exit and end of input return nil; cancellation returns ctx.Err().
func (s *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	s.lines = readLines(done, s.in)
	s.log.Debug("menu started")

	for {
		displayMenu(s.out)
		choice, err := s.readLine(ctx)
		if err != nil {
			return s.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case OptionAdd:
			err = s.addTask(ctx)
		case OptionView:
			s.viewTasks()
		case OptionUpdate:
			err = s.updateTask(ctx)
		case OptionDelete:
			err = s.deleteTask(ctx)
		case OptionComplete:
			err = s.setStatus(ctx, task.StatusComplete)
		case OptionIncomplete:
			err = s.setStatus(ctx, task.StatusIncomplete)
		case OptionExit:
			fmt.Fprintln(s.out, "Thank you for using Todo Application. Goodbye!")
			s.log.Debug("menu exited")
			return nil
		default:
			displayError(s.out, "Invalid option. Please select a number between 1 and 7.")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		s.log.Debug("input closed")
		return nil
	}
	return err
}

func (s *Shell) addTask(ctx context.Context) error {
	title, err := s.prompt(ctx, "Enter task title: ")
	if err != nil {
		return err
	}
	description, err := s.prompt(ctx, "Enter task description: ")
	if err != nil {
		return err
	}

	created, err := s.store.Create(title, description)
	if err != nil {
		s.reject("create", err)
		return nil
	}
	s.log.Debug("task created", "task_id", created.ID)
	displaySuccess(s.out, fmt.Sprintf("Task created successfully with ID: %d", created.ID))
	return nil
}

func (s *Shell) viewTasks() {
	if !s.json {
		displayTasks(s.out, s.store.List())
		return
	}

	snap := s.store.Snapshot()
	if err := task.ValidateSnapshot(snap); err != nil {
		s.log.Error("snapshot failed validation", "err", err)
		displayError(s.out, err.Error())
		return
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.log.Error("marshal snapshot", "err", err)
		displayError(s.out, err.Error())
		return
	}
	fmt.Fprintf(s.out, "%s\n", data)
}

func (s *Shell) updateTask(ctx context.Context) error {
	id, raw, ok, err := s.promptID(ctx, "Enter task ID to update: ")
	if err != nil || !ok {
		return err
	}
	newTitle, err := s.prompt(ctx, "Enter new title (or press Enter to keep current): ")
	if err != nil {
		return err
	}
	newDescription, err := s.prompt(ctx, "Enter new description (or press Enter to keep current): ")
	if err != nil {
		return err
	}

	if _, err := s.store.Update(id, keepIfBlank(newTitle), keepIfBlank(newDescription)); err != nil {
		s.rejectID("update", raw, err)
		return nil
	}
	s.log.Debug("task updated", "task_id", id)
	displaySuccess(s.out, fmt.Sprintf("Task %d updated successfully.", id))
	return nil
}

func (s *Shell) deleteTask(ctx context.Context) error {
	id, raw, ok, err := s.promptID(ctx, "Enter task ID to delete: ")
	if err != nil || !ok {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		s.rejectID("delete", raw, err)
		return nil
	}
	s.log.Debug("task deleted", "task_id", id)
	displaySuccess(s.out, fmt.Sprintf("Task %d deleted successfully.", id))
	return nil
}

func (s *Shell) setStatus(ctx context.Context, status task.Status) error {
	id, raw, ok, err := s.promptID(ctx, fmt.Sprintf("Enter task ID to mark %s: ", status))
	if err != nil || !ok {
		return err
	}

	op := s.store.MarkComplete
	if status == task.StatusIncomplete {
		op = s.store.MarkIncomplete
	}
	if _, err := op(id); err != nil {
		s.rejectID("mark "+string(status), raw, err)
		return nil
	}
	s.log.Debug("task status changed", "task_id", id, "status", status)
	displaySuccess(s.out, fmt.Sprintf("Task %d marked as %s.", id, status))
	return nil
}

// promptID reads and parses an ID, returning the line as typed alongside it.
// ok is false when the input was rejected and an error has already been shown.
func (s *Shell) promptID(ctx context.Context, text string) (id int, raw string, ok bool, err error) {
	raw, err = s.prompt(ctx, text)
	if err != nil {
		return 0, "", false, err
	}
	id, err = task.ValidateIDInput(raw)
	if err != nil {
		s.reject("parse id", err)
		return 0, raw, false, nil
	}
	return id, raw, true, nil
}

// reject shows a recoverable store or validator error.
func (s *Shell) reject(op string, err error) {
	s.log.Debug("operation rejected", "op", op, "err", err)
	displayError(s.out, err.Error())
}

// rejectID is reject for operations on a typed ID. A missing task is
// reported with the ID exactly as it was entered.
func (s *Shell) rejectID(op, raw string, err error) {
	var nf *task.NotFoundError
	if !errors.As(err, &nf) {
		s.reject(op, err)
		return
	}
	s.log.Debug("operation rejected", "op", op, "task_id", nf.ID, "err", err)
	displayError(s.out, fmt.Sprintf("Task ID %s not found.", raw))
}

func (s *Shell) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(s.out, text)
	return s.readLine(ctx)
}

func (s *Shell) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, open := <-s.lines:
		if !open {
			return "", errEndOfInput
		}
		return res.line, res.err
	}
}

// readLines feeds lines from r until EOF or done is closed. Reads block, so
// they run on their own goroutine and Run can still react to ctx. A read
// already in progress when done closes finishes before the goroutine exits.
func readLines(done <-chan struct{}, r io.Reader) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			select {
			case <-done:
				return
			default:
			}
			if err != nil && (err != io.EOF || line == "") {
				if err != io.EOF {
					select {
					case ch <- lineResult{err: fmt.Errorf("read input: %w", err)}:
					case <-done:
					}
				}
				return
			}
			select {
			case ch <- lineResult{line: strings.TrimRight(line, "\r\n")}:
			case <-done:
				return
			}
			if err == io.EOF {
				return
			}
		}
	}()
	return ch
}

// keepIfBlank maps blank update input to "leave unchanged".
func keepIfBlank(input string) task.Optional[string] {
	if strings.TrimSpace(input) == "" {
		return task.None[string]()
	}
	return task.Some(input)
}
