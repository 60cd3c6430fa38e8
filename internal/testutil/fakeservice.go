// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"

	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/tasklist"
)

// FakeService is a service.Service backed by a real manager over a memory
// store, with deterministic ids (task-1, task-2, ...) and error injection.
type FakeService struct {
	*tasklist.Manager

	// Store is the memory store behind the manager.
	Store *store.Memory

	// Error injection for testing
	AddTaskErr        error
	ToggleCompleteErr error
	DeleteTaskErr     error

	// Closed is set once Close has been called.
	Closed bool
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates a FakeService with an empty task list.
func NewFakeService() *FakeService {
	st := store.NewMemory()
	n := 0
	m := tasklist.New(st, tasklist.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}))
	if err := m.Restore(context.Background()); err != nil {
		panic(err)
	}
	return &FakeService{Manager: m, Store: st}
}

// Seed replaces the task list with tasks, going through the store and Restore
// the way a fresh start would.
func (f *FakeService) Seed(tasks ...tasklist.Task) {
	b, err := json.Marshal(tasks)
	if err != nil {
		panic(err)
	}
	ctx := context.Background()
	if err := f.Store.Put(ctx, tasklist.StorageKey, b); err != nil {
		panic(err)
	}
	if err := f.Manager.Restore(ctx); err != nil {
		panic(err)
	}
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, description, deadline string) (tasklist.Task, error) {
	if f.AddTaskErr != nil {
		return tasklist.Task{}, f.AddTaskErr
	}
	return f.Manager.AddTask(ctx, description, deadline)
}

// ToggleComplete implements service.Service.
func (f *FakeService) ToggleComplete(ctx context.Context, id string) error {
	if f.ToggleCompleteErr != nil {
		return f.ToggleCompleteErr
	}
	return f.Manager.ToggleComplete(ctx, id)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	return f.Manager.DeleteTask(ctx, id)
}

// Close implements service.Service.
func (f *FakeService) Close() error {
	f.Closed = true
	return f.Manager.Close()
}
