package migrations

import "embed"

// FS contém os scripts SQL aplicados em ordem de nome
//
//go:embed *.sql
var FS embed.FS
