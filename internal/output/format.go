// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/tasklist"
)

// EmptyPlaceholder is printed instead of a list when there are no tasks.
const EmptyPlaceholder = "no tasks yet. add a new task."

// FormatTask formats a task line for the list view.
// Format: "{N:>4}  [ ] {DESCRIPTION}" with "[x]" for completed tasks and
// "  (due YYYY-MM-DD)" appended when the task has a deadline.
func FormatTask(w io.Writer, num int, task tasklist.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s", num, mark, normalizeDescription(task.Description))
	if task.HasDeadline() {
		line += fmt.Sprintf("  (due %s)", task.Deadline)
	}
	fmt.Fprintln(w, line)
}

// FormatList formats every task, numbered from 1, or the placeholder when
// the list is empty and quiet is false.
func FormatList(w io.Writer, tasks []tasklist.Task, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, EmptyPlaceholder)
		}
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// normalizeDescription normalizes a description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func normalizeDescription(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	// Restored tasks are not validated, so this can still happen.
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
