package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nk-catalog/config"
)

func TestRebind(t *testing.T) {
	query := "UPDATE t SET a = ?, b = ? WHERE id = ?"

	Driver = config.DriverSQLite
	assert.Equal(t, query, Rebind(query))

	Driver = config.DriverPostgres
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", Rebind(query))

	Driver = ""
}

func TestInitDB_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nk.db")

	require.NoError(t, InitDB(ctx, config.DBConfig{Driver: config.DriverSQLite, DSN: path}))
	t.Cleanup(func() { _ = CloseDB() })

	// schema is idempotent
	_, err := DB.ExecContext(ctx, schema)
	require.NoError(t, err)

	var count int
	require.NoError(t, DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM nk_feed_submissions").Scan(&count))
	assert.Equal(t, 0, count)
}
