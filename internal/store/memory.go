package store

import (
	"context"
	"sync"
)

// Memory is an in-process store. Contents are lost on exit.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte

	// PutErr, when set, is returned by every Put.
	PutErr error
}

// NewMemory creates an empty memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

// Get implements Store.
func (s *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put implements Store.
func (s *Memory) Put(ctx context.Context, key string, value []byte) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.m[key] = v
	return nil
}

// Close implements Store.
func (s *Memory) Close() error { return nil }
