package migrations

import "embed"

// Files holds the credential store schema, applied in filename order on open.
//
//go:embed 0*.sql
var Files embed.FS
