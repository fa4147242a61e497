// Package item embeds the goose migrations for the item bounded context.
package item

import "embed"

//go:embed *.sql
var FS embed.FS
