package db

import _ "embed"

//go:embed schema.sql
var Schema string

// SchemaVersion is stored in PRAGMA user_version once Schema is applied.
const SchemaVersion = 1
