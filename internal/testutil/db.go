package testutil

import (
	"context"
	"testing"

	"github.com/joestump/civic-api/internal/db"
)

// NewTestDB opens an in-memory SQLite DB and runs all goose migrations.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	// Use a file URI with shared cache so all pool connections share the
	// same in-memory database. Each test gets a unique name to avoid
	// cross-test interference. Times are stored in SQLite's own text format
	// so range comparisons on start_time sort lexically.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_busy_timeout=5000" +
		"&_pragma=foreign_keys(1)&_time_format=sqlite"

	ctx := context.Background()
	conn, err := db.Open(ctx, "sqlite3", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(ctx, conn); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return conn
}
