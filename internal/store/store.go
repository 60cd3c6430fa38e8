// Package store provides the persistent key-value slot that holds the task list.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Store kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMySQL  = "mysql"
	KindMemory = "memory"
)

// SQLiteFile is the database filename used by the sqlite store.
const SQLiteFile = "todo.db"

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("not found")

// Configuration errors returned by Open.
var (
	ErrUnknownKind = errors.New("unknown store kind")
	ErrMissingDSN  = errors.New("mysql store requires a dsn (--dsn or TODO_DSN)")
)

// Store is a key-value store. Values are opaque blobs and every Put
// replaces the previous value in full.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases resources held by the store.
	Close() error
}

// Open creates a store of the given kind.
// dir is the data directory used by file-backed kinds; dsn is only used by mysql.
func Open(ctx context.Context, kind, dir, dsn string) (Store, error) {
	switch kind {
	case "", KindFile:
		f, err := NewFile(dir)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindSQLite:
		return openSQL(ctx, DialectSQLite, filepath.Join(dir, SQLiteFile))
	case KindMySQL:
		if dsn == "" {
			return nil, ErrMissingDSN
		}
		return openSQL(ctx, DialectMySQL, dsn)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// openSQL keeps a failed open from returning a non-nil Store holding a nil *SQL.
func openSQL(ctx context.Context, d Dialect, dsn string) (Store, error) {
	s, err := OpenSQL(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}
