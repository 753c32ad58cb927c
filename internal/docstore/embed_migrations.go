package docstore

import "embed"

// MigrationFS embeds the SQL that creates the collection tables.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
