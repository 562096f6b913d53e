// Package db embeds the goose SQL migrations so binaries can apply them
// without a migrations directory on disk.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
