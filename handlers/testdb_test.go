package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"monedero/backend/database"
	"monedero/backend/middleware"
	"monedero/backend/migrations"
	"monedero/backend/security"

	"github.com/gorilla/mux"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
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

// authedRequest builds a request carrying the authenticated user id and any
// route variables, the way the router and auth middleware would.
func authedRequest(method, target, userID string, body io.Reader, vars map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if userID != "" {
		r = r.WithContext(context.WithValue(r.Context(), middleware.UserIDKey, userID))
	}
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}
