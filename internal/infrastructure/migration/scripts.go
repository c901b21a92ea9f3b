package migration

import "embed"

//go:embed scripts/goose/*.sql
var gooseScripts embed.FS

//go:embed scripts/migrate/*.sql
var migrateScripts embed.FS

const (
	gooseScriptsDir   = "scripts/goose"
	migrateScriptsDir = "scripts/migrate"
)
