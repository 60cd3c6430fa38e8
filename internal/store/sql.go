package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect holds the driver name and statements for one SQL database.
type Dialect struct {
	Driver string
	Schema string
	Upsert string
}

var (
	// DialectSQLite targets modernc.org/sqlite.
	DialectSQLite = Dialect{
		Driver: "sqlite",
		Schema: `CREATE TABLE IF NOT EXISTS kv (
			name  TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`,
		Upsert: `INSERT INTO kv (name, value) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
	}

	// DialectMySQL targets github.com/go-sql-driver/mysql.
	DialectMySQL = Dialect{
		Driver: "mysql",
		Schema: `CREATE TABLE IF NOT EXISTS kv (
			name  VARCHAR(191) NOT NULL PRIMARY KEY,
			value LONGBLOB NOT NULL
		)`,
		Upsert: `INSERT INTO kv (name, value) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE value = VALUES(value)`,
	}
)

// SQL stores keys as rows of a single kv table.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens the database and creates the kv table if needed.
// For sqlite, dsn is a file path whose directory is created on demand.
func OpenSQL(ctx context.Context, d Dialect, dsn string) (*SQL, error) {
	if d.Driver == DialectSQLite.Driver && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.Driver, err)
	}
	if d.Driver == DialectSQLite.Driver {
		// sqlite allows one writer; a single connection also keeps ":memory:" alive.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, d.Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &SQL{db: db, dialect: d}, nil
}

// Get implements Store.
func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE name = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put implements Store.
func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value)
	return err
}

// Close implements Store.
func (s *SQL) Close() error {
	return s.db.Close()
}
