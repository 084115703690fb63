// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use
// setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/specmentor/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProject inserts a test project and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, phase string) string {
	t.Helper()
	if id == "" {
		id = "PROJ-001"
	}
	if phase == "" {
		phase = "REQUIREMENTS"
	}
	_, err := db.Exec("INSERT INTO projects (id, name, owner_id, current_phase) VALUES (?, 'Test Project', 'alice', ?)", id, phase)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedDocument inserts a test document and returns its ID.
func seedDocument(t *testing.T, db *sql.DB, id, projectID, phase string) string {
	t.Helper()
	if id == "" {
		id = "DOC-001"
	}
	if projectID == "" {
		projectID = "PROJ-001"
	}
	if phase == "" {
		phase = "REQUIREMENTS"
	}
	_, err := db.Exec("INSERT INTO documents (id, project_id, phase, content) VALUES (?, ?, ?, 'seed content')", id, projectID, phase)
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return id
}
