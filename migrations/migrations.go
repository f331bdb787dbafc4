// Package migrations embeds SQL migration files for goose.
//
// Files follow the naming convention YYYYMMDDHHMMSS_description.sql and are
// applied in order during database initialization.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
