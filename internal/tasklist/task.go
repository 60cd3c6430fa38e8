// Package tasklist owns the ordered task collection and keeps it in sync
// with a persistent key-value store.
package tasklist

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the deadline format (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// Task is a single to-do entry.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Deadline    string `json:"deadline,omitempty"` // YYYY-MM-DD, empty when absent
	Completed   bool   `json:"completed"`
}

// HasDeadline reports whether the task has a deadline.
func (t Task) HasDeadline() bool {
	return t.Deadline != ""
}

// ValidationError reports input rejected by AddTask. Nothing is mutated
// when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Messages returned in ValidationError.
const (
	MsgEmptyDescription = "description must not be empty"
	MsgInvalidDeadline  = "deadline must be a date in YYYY-MM-DD format"
)

// normalizeInput trims the description and deadline and checks both.
// An empty deadline means "no deadline".
func normalizeInput(description, deadline string) (string, string, error) {
	text := strings.TrimSpace(description)
	if text == "" {
		return "", "", &ValidationError{Field: "description", Message: MsgEmptyDescription}
	}

	deadline = strings.TrimSpace(deadline)
	if deadline != "" {
		if _, err := time.Parse(DateLayout, deadline); err != nil {
			return "", "", &ValidationError{
				Field:   "deadline",
				Message: fmt.Sprintf("%s: %s", MsgInvalidDeadline, deadline),
			}
		}
	}
	return text, deadline, nil
}
