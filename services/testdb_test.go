package services

import (
	"database/sql"
	"testing"

	"monedero/backend/database"
	"monedero/backend/migrations"
	"monedero/backend/security"
)

// setupTestDB points the global connection at a fresh in-memory database
// with the full schema and seed catalogs applied.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A single connection keeps every statement on the same in-memory DB
	db.SetMaxOpenConns(1)

	if err := database.CreateSchema(db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	database.DB = db
	t.Cleanup(func() { db.Close() })

	if err := migrations.SeedCategoryTemplates(db); err != nil {
		t.Fatalf("failed to seed category templates: %v", err)
	}
	if err := migrations.SeedSystemBanks(db); err != nil {
		t.Fatalf("failed to seed system banks: %v", err)
	}

	security.InitializeEncryption("test-encryption-key")
}
