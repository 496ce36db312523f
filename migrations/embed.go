// Package migrations embeds the goose SQL migrations for the underwriting store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
