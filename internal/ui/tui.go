// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/task"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	logger  *log.Logger
	altScrn bool
}

// WithLogger sets the logger used for operation traces. The logger must
// not write to the terminal the TUI is drawing on.
func WithLogger(l *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAltScreen toggles the alternate screen buffer (default on).
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScrn = enabled
	}
}

// RunTUI starts the full-screen menu over store.
func RunTUI(ctx context.Context, store *task.Store, opts ...TUIOption) error {
	c := &tuiConfig{
		logger:  logging.Discard(),
		altScrn: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScrn {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(NewModel(store, c.logger), programOpts...)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type mode int

const (
	modeMenu mode = iota
	modePrompt
)

// field is one prompt in an action's input sequence.
type field struct {
	prompt string
	isID   bool
}

// action is one menu entry.
type action struct {
	label  string
	fields []field
	// run applies the action. values holds one entry per field, in order.
	run func(s *task.Store, id int, values []string) (string, error)
}

var actions = []action{
	{
		label: "Add Task",
		fields: []field{
			{prompt: "Enter task title: "},
			{prompt: "Enter task description: "},
		},
		run: func(s *task.Store, _ int, v []string) (string, error) {
			created, err := s.Create(v[0], v[1])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Task created successfully with ID: %d", created.ID), nil
		},
	},
	{
		label: "View Task List",
		run: func(s *task.Store, _ int, _ []string) (string, error) {
			return fmt.Sprintf("%d tasks", s.Len()), nil
		},
	},
	{
		label: "Update Task",
		fields: []field{
			{prompt: "Enter task ID to update: ", isID: true},
			{prompt: "Enter new title (or press Enter to keep current): "},
			{prompt: "Enter new description (or press Enter to keep current): "},
		},
		run: func(s *task.Store, id int, v []string) (string, error) {
			if _, err := s.Update(id, keepIfBlank(v[1]), keepIfBlank(v[2])); err != nil {
				return "", err
			}
			return fmt.Sprintf("Task %d updated successfully.", id), nil
		},
	},
	{
		label:  "Delete Task",
		fields: []field{{prompt: "Enter task ID to delete: ", isID: true}},
		run: func(s *task.Store, id int, _ []string) (string, error) {
			if err := s.Delete(id); err != nil {
				return "", err
			}
			return fmt.Sprintf("Task %d deleted successfully.", id), nil
		},
	},
	{
		label:  "Mark Task Complete",
		fields: []field{{prompt: "Enter task ID to mark complete: ", isID: true}},
		run: func(s *task.Store, id int, _ []string) (string, error) {
			if _, err := s.MarkComplete(id); err != nil {
				return "", err
			}
			return fmt.Sprintf("Task %d marked as complete.", id), nil
		},
	},
	{
		label:  "Mark Task Incomplete",
		fields: []field{{prompt: "Enter task ID to mark incomplete: ", isID: true}},
		run: func(s *task.Store, id int, _ []string) (string, error) {
			if _, err := s.MarkIncomplete(id); err != nil {
				return "", err
			}
			return fmt.Sprintf("Task %d marked as incomplete.", id), nil
		},
	},
	{label: "Exit"},
}

const exitIndex = 6

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model for the task menu.
type Model struct {
	store  *task.Store
	log    *log.Logger
	cursor int
	mode   mode

	// prompt state
	active int
	step   int
	input  []rune
	values []string
	id     int

	status    string
	statusErr bool
	quitting  bool
}

// NewModel creates a menu model over store.
func NewModel(store *task.Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Model{store: store, log: logger}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.mode == modePrompt {
		return m.updatePrompt(key)
	}
	return m.updateMenu(key)
}

func (m *Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(actions)-1 {
			m.cursor++
		}
	case "enter":
		return m.choose(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7":
		idx := int(key.String()[0] - '1')
		m.cursor = idx
		return m.choose(idx)
	}
	return m, nil
}

func (m *Model) choose(idx int) (tea.Model, tea.Cmd) {
	if idx == exitIndex {
		m.quitting = true
		return m, tea.Quit
	}
	m.active = idx
	m.step = 0
	m.values = m.values[:0]
	m.input = m.input[:0]
	m.id = 0
	m.status = ""
	m.statusErr = false
	if len(actions[idx].fields) == 0 {
		m.apply()
		return m, nil
	}
	m.mode = modePrompt
	return m, nil
}

func (m *Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
		m.status = "Cancelled."
		m.statusErr = false
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	case tea.KeyEnter:
		m.submitField()
	}
	return m, nil
}

// submitField records the current input and either advances to the next
// field or applies the action.
func (m *Model) submitField() {
	act := actions[m.active]
	value := string(m.input)
	m.input = m.input[:0]

	if act.fields[m.step].isID {
		id, err := task.ValidateIDInput(value)
		if err != nil {
			m.fail(err)
			return
		}
		m.id = id
	}
	m.values = append(m.values, value)
	m.step++
	if m.step < len(act.fields) {
		return
	}
	m.apply()
}

func (m *Model) apply() {
	act := actions[m.active]
	m.mode = modeMenu
	msg, err := act.run(m.store, m.id, m.values)
	if err != nil {
		m.fail(err)
		return
	}
	m.log.Debug("tui action applied", "action", act.label, "task_id", m.id)
	m.status = msg
	m.statusErr = false
}

func (m *Model) fail(err error) {
	m.log.Debug("operation rejected", "action", actions[m.active].label, "err", err)
	msg := err.Error()
	// ID actions always prompt for the ID first.
	var nf *task.NotFoundError
	if errors.As(err, &nf) && len(m.values) > 0 {
		msg = fmt.Sprintf("Task ID %s not found.", m.values[0])
	}
	m.mode = modeMenu
	m.status = "Error: " + msg
	m.statusErr = true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return "Thank you for using Todo Application. Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("===== Todo Application =====") + "\n")
	for i, act := range actions {
		line := fmt.Sprintf("%d. %s", i+1, act.label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")

	if m.mode == modePrompt {
		act := actions[m.active]
		b.WriteString(act.fields[m.step].prompt + string(m.input) + "_\n\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status) + "\n\n")
		} else {
			b.WriteString(successStyle.Render(m.status) + "\n\n")
		}
	}

	writeTasks(&b, m.store.List())
	writeFooter(&b, m.mode)
	return b.String()
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	if len(tasks) == 0 {
		b.WriteString("No tasks found. Your task list is empty.\n\n")
		return
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Task List (%d tasks)", len(tasks))) + "\n\n")
	for i := range tasks {
		b.WriteString(formatTask(&tasks[i]) + "\n")
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder, md mode) {
	if md == modePrompt {
		b.WriteString(dimStyle.Render("enter submit | esc cancel | ctrl+c quit") + "\n")
		return
	}
	b.WriteString(dimStyle.Render("up/down or j/k move | enter or 1-7 select | q quit") + "\n")
}

func formatTask(t *task.Task) string {
	statusIcon := " "
	if t.Done() {
		statusIcon = "x"
	}
	line := fmt.Sprintf("  [%s] %d. %s", statusIcon, t.ID, t.Title)
	details := []rune(t.Description)
	if len(details) > 60 {
		details = append(details[:57], []rune("...")...)
	}
	return line + "\n      " + string(details)
}

// keepIfBlank maps blank update input to "leave unchanged".
func keepIfBlank(input string) task.Optional[string] {
	if strings.TrimSpace(input) == "" {
		return task.None[string]()
	}
	return task.Some(input)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
