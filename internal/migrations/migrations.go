// Package migrations embeds the goose SQL migration files.
package migrations

import "embed"

// FS holds the embedded migration files, applied by database.Migrate.
//
//go:embed *.sql
var FS embed.FS
