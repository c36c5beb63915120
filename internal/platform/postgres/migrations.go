package postgres

import "embed"

// MigrationsFS holds the embedded SQL migration files, applied with goose
// at server startup.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migration files inside MigrationsFS.
const MigrationsDir = "migrations"
