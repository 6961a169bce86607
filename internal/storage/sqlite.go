// Package storage persists key/value mappings in a SQLite database.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned by Lookup when no mapping exists for the key.
	ErrNotFound = errors.New("key not found")

	// ErrEmptyKey is returned when an operation is given an empty key.
	ErrEmptyKey = errors.New("key must not be empty")

	// ErrIO indicates the database file or its directory could not be used.
	ErrIO = errors.New("storage I/O error")

	// ErrSchema indicates the schema of a fresh database could not be created.
	ErrSchema = errors.New("creating schema")
)

var errClosed = fmt.Errorf("%w: database closed", ErrIO)

// schema is applied only when the database file does not exist yet.
const schema = `
	CREATE TABLE IF NOT EXISTS mapping (
		id INTEGER PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		value TEXT
	);
`

// DB wraps a SQLite database connection.
type DB struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Options configures OpenDB.
type Options struct {
	Logger *slog.Logger // Optional; nil discards
}

// OpenDB opens the database at path, creating it with the mapping schema if
// no file exists there.
//
// An existing file is trusted as-is: its schema is not checked or migrated.
// Opening a file written with a different schema is undefined behavior.
func OpenDB(path string, opts Options) (*DB, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dirInfo, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if !dirInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrIO, filepath.Dir(path))
	}

	// A zero-byte file is an empty SQLite database, e.g. one another
	// invocation has just created but not yet given a schema.
	fresh := false
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fresh = true
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	case info.Size() == 0:
		fresh = true
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrIO, err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connecting to database: %v", ErrIO, err)
	}

	if fresh {
		logger.Info("creating database", "path", path)
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", ErrSchema, err)
		}
	} else {
		logger.Debug("opened existing database", "path", path)
	}

	return &DB{db: db, path: path, logger: logger}, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection. It is safe to call more than once
// and on a nil *DB.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Upsert stores value under key, replacing any existing mapping for key.
func (d *DB) Upsert(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if d.db == nil {
		return errClosed
	}

	// The UNIQUE constraint on key turns this into delete-then-insert for an
	// existing key, so there is never more than one row per key.
	_, err := d.db.Exec(`INSERT OR REPLACE INTO mapping (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("%w: storing %q: %v", ErrIO, key, err)
	}
	d.logger.Debug("stored mapping", "key", key, "encoded_len", len(value))
	return nil
}

// Lookup returns the value stored under key.
func (d *DB) Lookup(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if d.db == nil {
		return "", errClosed
	}

	var value sql.NullString
	err := d.db.QueryRow(`SELECT value FROM mapping WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("%w: looking up %q: %v", ErrIO, key, err)
	}
	if !value.Valid {
		// Only a store written by another program can hold a NULL value.
		return "", fmt.Errorf("%w: %s has no value", ErrNotFound, key)
	}

	d.logger.Debug("found mapping", "key", key, "encoded_len", len(value.String))
	return value.String, nil
}
