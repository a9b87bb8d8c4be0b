// Package migrations embeds the PostgreSQL schema used by the pgx repositories.
package migrations

import _ "embed"

//go:embed idm_db.sql
var Schema string
