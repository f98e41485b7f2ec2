// Package migrations embeds the SQL schema files into the binary, so a
// deployed gateway never needs migration files on disk.
package migrations

import (
	"embed"

	"github.com/quennell/appliancelink/internal/infrastructure/database"
)

//go:embed *.sql
var files embed.FS

func init() {
	database.RegisterMigrations(files, ".")
}
