// Package config handles the XDG data directory, store selection and logging.
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"todo/internal/store"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// EnvStore overrides the store kind when --store is not given.
	EnvStore = "TODO_STORE"

	// EnvDSN overrides the database DSN when --dsn is not given.
	EnvDSN = "TODO_DSN"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the data directory path.
	Dir string

	// Store is the store kind: file, sqlite, mysql or memory.
	Store string

	// DSN is the database connection string for the mysql store.
	DSN string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config. Empty arguments fall back to the environment,
// then to defaults: XDG_DATA_HOME/todo or $HOME/.local/share/todo, file store.
func New(dataDir, storeKind, dsn string) (*Config, error) {
	dir := dataDir
	if dir == "" {
		dir = DefaultDataDir()
	}
	if storeKind == "" {
		storeKind = os.Getenv(EnvStore)
	}
	if storeKind == "" {
		storeKind = store.KindFile
	}
	if dsn == "" {
		dsn = os.Getenv(EnvDSN)
	}
	return &Config{Dir: dir, Store: storeKind, DSN: dsn}, nil
}

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// Logger returns a text logger writing to w. Only warnings and errors are
// written unless Debug is set.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
