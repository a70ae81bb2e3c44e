package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens a local sqlite database, creating its directory if needed.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	// it also keeps `:memory:` databases to a single connection, every new
	// connection would otherwise see an empty database.
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, wrapOpenDB(err)
	}

	return db, nil
}

// IsRemote reports whether `location` points at a libsql server instead of a file.
func IsRemote(location string) bool {
	for _, scheme := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(location, scheme) {
			return true
		}
	}
	return false
}

// OpenRemoteDB opens a database hosted on a libsql server.
func OpenRemoteDB(location, authToken string) (*sql.DB, error) {
	dsn, err := url.Parse(location)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	if authToken != "" {
		query := dsn.Query()
		query.Set("authToken", authToken)
		dsn.RawQuery = query.Encode()
	}
	db, err := sql.Open("libsql", dsn.String())
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	return db, nil
}

// Open picks OpenRemoteDB or OpenDB depending on `location`.
func Open(location, authToken string) (*sql.DB, error) {
	if IsRemote(location) {
		return OpenRemoteDB(location, authToken)
	}
	return OpenDB(location)
}

func wrapMigrate(err error) error {
	return fmt.Errorf("migrate db: %w", err)
}

// Migrate applies `schema` to a database that has none yet and records
// `version` in user_version. A database already at `version` is left alone, any
// other version is refused, there is no upgrade path between versions.
func Migrate(ctx context.Context, db *sql.DB, schema string, version int) error {
	current, err := UserVersion(ctx, db)
	if err != nil {
		return wrapMigrate(err)
	}
	if current == version {
		return nil
	}
	if current != 0 {
		return wrapMigrate(fmt.Errorf("database is at schema version %d, expected %d", current, version))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return wrapMigrate(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, schema)
	if err != nil {
		return wrapMigrate(err)
	}
	// pragmas cannot take bound parameters
	_, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version))
	if err != nil {
		return wrapMigrate(err)
	}
	err = tx.Commit()
	if err != nil {
		return wrapMigrate(err)
	}
	return nil
}

func UserVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}
