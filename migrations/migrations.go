// Package migrations embeds the SQL schema files so integration tests and
// tooling can apply them without relying on a working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
