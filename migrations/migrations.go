// Package migrations embeds the storefront schema migrations.
package migrations

import "embed"

// FS contains the SQL migration files, applied in lexical order by
// database.RunMigrations.
//
//go:embed *.sql
var FS embed.FS
