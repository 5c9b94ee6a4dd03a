// Package migrations embeds the SQL schema migrations so they ship inside
// the binary and can be applied at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
