package tasklist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"todo/internal/store"
)

// StorageKey is the key the whole collection is persisted under.
const StorageKey = "tasks"

// Listener receives a snapshot of the collection after every change.
// Listeners run while the manager is locked and must not call back into it.
type Listener func(tasks []Task)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithIDFunc replaces the id generator.
func WithIDFunc(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// Manager is the single owner of the task collection.
// Every successful mutation is written through to the store.
type Manager struct {
	mu        sync.Mutex
	store     store.Store
	tasks     []Task
	log       *slog.Logger
	newID     func() string
	listeners map[int]Listener
	nextSub   int
}

// New creates a manager with an empty collection. Call Restore to load
// previously persisted tasks.
func New(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:     st,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:     NewID,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads the collection from the store. A missing value leaves the
// collection empty. A value that is not a JSON array of tasks is discarded
// without error. Only store read failures are returned.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = nil

	raw, err := m.store.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.log.Debug("no persisted tasks", "key", StorageKey)
	case err != nil:
		return fmt.Errorf("failed to read tasks: %w", err)
	default:
		var restored []Task
		if err := json.Unmarshal(raw, &restored); err != nil {
			m.log.Debug("discarding unreadable persisted tasks", "key", StorageKey, "error", err)
		} else {
			m.tasks = restored
			m.log.Debug("restored tasks", "count", len(restored))
		}
	}

	err = m.persistLocked(ctx)
	m.notifyLocked()
	return err
}

// Persist writes the whole collection to the store.
func (m *Manager) Persist(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistLocked(ctx)
}

func (m *Manager) persistLocked(ctx context.Context) error {
	tasks := m.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := m.store.Put(ctx, StorageKey, b); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	return nil
}

// AddTask appends a new, incomplete task and persists the collection.
// description is trimmed and must not be empty; an empty deadline means none.
// Invalid input returns a *ValidationError and leaves the collection unchanged.
func (m *Manager) AddTask(ctx context.Context, description, deadline string) (Task, error) {
	text, due, err := normalizeInput(description, deadline)
	if err != nil {
		return Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := Task{
		ID:          m.uniqueIDLocked(),
		Description: text,
		Deadline:    due,
	}
	m.tasks = append(m.tasks, t)
	m.log.Debug("added task", "id", t.ID)

	err = m.persistLocked(ctx)
	m.notifyLocked()
	return t, err
}

// uniqueIDLocked draws ids until one is not already in the collection.
func (m *Manager) uniqueIDLocked() string {
	for {
		id := m.newID()
		if m.indexLocked(id) < 0 {
			return id
		}
	}
}

// ToggleComplete flips the completed flag of the task with the given id.
// An unknown id is a no-op.
func (m *Manager) ToggleComplete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		m.log.Debug("toggle: no such task", "id", id)
		return nil
	}
	m.tasks[i].Completed = !m.tasks[i].Completed

	err := m.persistLocked(ctx)
	m.notifyLocked()
	return err
}

// DeleteTask removes the task with the given id, keeping the order of the
// remaining tasks. An unknown id is a no-op.
func (m *Manager) DeleteTask(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		m.log.Debug("delete: no such task", "id", id)
		return nil
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)

	err := m.persistLocked(ctx)
	m.notifyLocked()
	return err
}

// Tasks returns a copy of the collection in insertion order.
func (m *Manager) Tasks() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to be called after every change.
// The returned func removes the listener.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

func (m *Manager) indexLocked(id string) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshotLocked() []Task {
	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

func (m *Manager) notifyLocked() {
	if len(m.listeners) == 0 {
		return
	}
	snap := m.snapshotLocked()
	for _, fn := range m.listeners {
		fn(snap)
	}
}
