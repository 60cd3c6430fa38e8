// Package service defines the backend-agnostic interface the presentation
// layers use to read and change the task list.
package service

import (
	"context"

	"todo/internal/tasklist"
)

// Service defines the operations the CLI and web UI depend on.
// *tasklist.Manager is the production implementation.
type Service interface {
	// Tasks returns the collection in insertion order.
	Tasks() []tasklist.Task

	// AddTask creates a task. Returns *tasklist.ValidationError for bad input.
	AddTask(ctx context.Context, description, deadline string) (tasklist.Task, error)

	// ToggleComplete flips a task's completed flag. Unknown ids are ignored.
	ToggleComplete(ctx context.Context, id string) error

	// DeleteTask removes a task. Unknown ids are ignored.
	DeleteTask(ctx context.Context, id string) error

	// Subscribe registers a change listener and returns its unsubscribe func.
	Subscribe(fn tasklist.Listener) func()

	// Close releases the backing store.
	Close() error
}

var _ Service = (*tasklist.Manager)(nil)
