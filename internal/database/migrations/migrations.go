// Package migrations embeds the goose migrations for every supported dialect.
// Each dialect lives in its own directory named after the database driver.
package migrations

import "embed"

//go:embed sqlite/*.sql mysql/*.sql
var FS embed.FS
