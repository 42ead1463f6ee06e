package appfs

import "embed"

// FS holds the directory database migrations.
//
//go:embed migrations
var FS embed.FS
