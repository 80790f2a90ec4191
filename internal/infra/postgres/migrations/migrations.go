package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the question-bank schema, registered from each file's init.
var Migrations = migrate.NewMigrations()
