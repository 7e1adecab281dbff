package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesKVStore(t *testing.T) {
	pool, err := NewPool(context.Background(), requireDB(t))
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, pool))
	// Second run is a no-op
	require.NoError(t, Migrate(ctx, pool))

	var exists bool
	err = pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'kv_store')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir(MigrationsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
