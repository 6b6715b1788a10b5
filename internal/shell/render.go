package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tasks-go/internal/task"
)

const listFooterWidth = 31

func displayMenu(w io.Writer) {
	fmt.Fprintln(w, "===== Todo Application =====")
	fmt.Fprintln(w, "1. Add Task")
	fmt.Fprintln(w, "2. View Task List")
	fmt.Fprintln(w, "3. Update Task")
	fmt.Fprintln(w, "4. Delete Task")
	fmt.Fprintln(w, "5. Mark Task Complete")
	fmt.Fprintln(w, "6. Mark Task Incomplete")
	fmt.Fprintln(w, "7. Exit")
	fmt.Fprintln(w)
	fmt.Fprint(w, "Select an option (1-7): ")
}

func displaySuccess(w io.Writer, message string) {
	fmt.Fprintln(w, message)
}

func displayError(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}

// displayTasks prints tasks in insertion order, or a notice when there are none.
func displayTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found. Your task list is empty.")
		return
	}

	fmt.Fprintf(w, "===== Task List (%d tasks) =====\n", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(w, "[%d] Title: %s\n", t.ID, t.Title)
		fmt.Fprintf(w, "    Description: %s\n", t.Description)
		fmt.Fprintf(w, "    Status: %s\n", t.Status)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("=", listFooterWidth))
}
