package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithMigrationsTable(t *testing.T) {
	assert.Equal(t, "", WithMigrationsTable(""))
	assert.Equal(t,
		"postgres://u:p@h/folio?x-migrations-table=folio_schema_migrations",
		WithMigrationsTable("postgres://u:p@h/folio"))
	assert.Equal(t,
		"postgres://u:p@h/folio?sslmode=disable&x-migrations-table=folio_schema_migrations",
		WithMigrationsTable("postgres://u:p@h/folio?sslmode=disable"))
}

func TestConnect_RequiresURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Connect(Config{})
	assert.ErrorContains(t, err, "DATABASE_URL")
}
