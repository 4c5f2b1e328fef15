package db

import (
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/casedesk/internal/config"
)

func TestParseUUID(t *testing.T) {
	t.Parallel()

	id, err := ParseUUID(" 00000000-0000-0000-0000-000000000001 ")
	require.NoError(t, err)
	assert.True(t, id.Valid)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", UUIDToString(id))

	_, err = ParseUUID("c1")
	assert.Error(t, err)
}

func TestParseOptionalUUID(t *testing.T) {
	t.Parallel()

	id, err := ParseOptionalUUID("  ")
	require.NoError(t, err)
	assert.False(t, id.Valid)
	assert.Equal(t, "", UUIDToString(id))
}

func TestTextHelpers(t *testing.T) {
	t.Parallel()

	assert.False(t, ToText("   ").Valid)
	assert.Equal(t, pgtype.Text{String: "hola", Valid: true}, ToText(" hola "))
	assert.Nil(t, TextPtr(pgtype.Text{}))
	require.NotNil(t, TextPtr(pgtype.Text{String: "x", Valid: true}))
	assert.Equal(t, "", TextToString(pgtype.Text{}))
}

func TestMigrateURL(t *testing.T) {
	t.Parallel()

	cfg := config.PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "casedesk", SSLMode: "disable"}
	assert.Equal(t, "pgx5://u:p@db:5432/casedesk?sslmode=disable", MigrateURL(cfg))
	assert.Equal(t, "pgx5://u@db/casedesk", migrateURL("postgresql://u@db/casedesk"))
	assert.Equal(t, "pgx5://u@db/casedesk", migrateURL("pgx5://u@db/casedesk"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	t.Parallel()

	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
