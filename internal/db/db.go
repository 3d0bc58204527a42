// Package db opens the optional SQLite mirror database.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the mirror database at path and ensures the schema
// exists. The caller owns the returned handle.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := conn.Exec(SchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize mirror schema: %w", err)
	}

	return conn, nil
}

// EnsureBuilding inserts the building row if it does not exist yet.
func EnsureBuilding(conn *sql.DB, id, name string) error {
	if name == "" {
		name = id
	}
	_, err := conn.Exec(
		"INSERT INTO buildings (id, name) VALUES (?, ?) ON CONFLICT(id) DO NOTHING",
		id, name,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure building %s: %w", id, err)
	}
	return nil
}
