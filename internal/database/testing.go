package database

import (
	"testing"

	"github.com/motorlot/catalog-api/internal/config"
)

// NewTest opens an in-memory SQLite database with migrations applied and
// fuel types seeded. The connection is closed when the test finishes.
func NewTest(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
