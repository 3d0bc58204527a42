// Package sqlite_test contains integration tests for the SQLite mirror
// repositories. All test setup goes through db.GetSchemaSQL() so tests cannot
// drift from the production schema.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/casetrack/internal/db"
)

// setupTestDB creates an in-memory mirror database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedBuilding inserts a test building and returns its ID.
func seedBuilding(t *testing.T, conn *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "bldg-001"
	}
	_, err := conn.Exec("INSERT INTO buildings (id, name) VALUES (?, ?)", id, "Test Building")
	if err != nil {
		t.Fatalf("failed to seed building: %v", err)
	}
	return id
}
