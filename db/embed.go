// Package db carries the SQL migrations applied by folioctl.
package db

import "embed"

// Migrations holds the migration files for builds with the embed_migrations tag.
//
//go:embed migrations/*.sql
var Migrations embed.FS
