// migrations/embed.go
package migrations

import "embed"

// FS holds the goose SQL migrations, compiled into every binary that applies them.
//
//go:embed *.sql
var FS embed.FS
