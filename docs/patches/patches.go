// Package patches holds the goose migrations of the news database.
package patches

import "embed"

//go:embed *.sql
var FS embed.FS
