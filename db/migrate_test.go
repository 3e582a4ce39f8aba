package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS(), ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	content, err := fs.ReadFile(migrationsFS(), "00001_create_users.sql")
	require.NoError(t, err)

	sql := string(content)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.True(t, strings.Contains(sql, "email         TEXT NOT NULL UNIQUE"))
}

func TestNewPostgresPool_InvalidURL(t *testing.T) {
	_, err := NewPostgresPool(t.Context(), "://not-a-url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DB URL")
}
