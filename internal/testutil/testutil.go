package testutil

import (
	"context"
	"database/sql"
	"swimrank-backend/pkg/migrations"
	"testing"
)

// OpenDB opens an in-memory sqlite database with `schema` applied, it is
// closed when the test ends.
func OpenDB(t testing.TB, schema string, version int) *sql.DB {
	t.Helper()

	database, err := migrations.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	err = migrations.Migrate(context.Background(), database, schema, version)
	if err != nil {
		t.Fatal(err)
	}
	return database
}
