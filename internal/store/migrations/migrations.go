// Package migrations embeds the index schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
