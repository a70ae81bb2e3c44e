package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE thing (
	id TEXT PRIMARY KEY NOT NULL
);
`

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, testSchema, 1))
	version, err := UserVersion(ctx, db)
	require.NoError(t, err)
	require.Equal(t, 1, version)

	_, err = db.Exec("INSERT INTO thing (id) VALUES ('a')")
	require.NoError(t, err)

	// a second run is a no-op instead of failing on the existing table
	require.NoError(t, Migrate(ctx, db, testSchema, 1))
	require.Error(t, Migrate(ctx, db, testSchema, 2))
}

func TestIsRemote(t *testing.T) {
	require.True(t, IsRemote("libsql://swimrank.example.turso.io"))
	require.True(t, IsRemote("https://swimrank.example.turso.io"))
	require.False(t, IsRemote("swimrank.db"))
	require.False(t, IsRemote(":memory:"))
	require.False(t, IsRemote("/var/lib/swimrank/swimrank.db"))
}
