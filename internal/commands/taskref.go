package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"todo/internal/tasklist"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in the list, 0 if ID is set
	ID  string // task id, empty if Num is set
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → ErrTaskRefRequired
// 2. More than one arg → error: too many arguments
// 3. All digits → position in the list
// 4. Anything else → task id
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}

	arg := strings.TrimSpace(args[0])
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}

	return TaskRef{ID: arg}, nil
}

// Resolve returns the task id the reference points to.
// Positions must be within the list; ids are returned as given so that
// unknown ids reach the manager, which ignores them.
func (r TaskRef) Resolve(tasks []tasklist.Task) (string, error) {
	if r.ID != "" {
		return r.ID, nil
	}
	if r.Num < 1 || r.Num > len(tasks) {
		return "", fmt.Errorf("task number out of range: %d", r.Num)
	}
	return tasks[r.Num-1].ID, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
