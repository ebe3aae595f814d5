package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizkylsmp/portfolio-server/internal/repository"
)

func TestInitSQLite(t *testing.T) {
	// Nested path: the parent directory is created on demand.
	path := filepath.Join(t.TempDir(), "db", "credentials.db")

	conn, err := InitSQLite(path)
	require.NoError(t, err)
	defer conn.Close()

	// The schema is in place and usable through the credential store.
	ctx := context.Background()
	store := repository.NewSQLCredentialStore(conn)

	got, err := store.Get(ctx, "setup_done")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Set(ctx, "setup_done", "true"))
	require.NoError(t, store.Set(ctx, "setup_done", "false"))

	got, err = store.Get(ctx, "setup_done")
	require.NoError(t, err)
	assert.Equal(t, "false", got)

	require.NoError(t, store.Delete(ctx, "setup_done", "fail_count"))
	got, err = store.Get(ctx, "setup_done")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInitSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	ctx := context.Background()

	conn, err := InitSQLite(path)
	require.NoError(t, err)
	store := repository.NewSQLCredentialStore(conn)
	require.NoError(t, store.Set(ctx, "password_hash", "abc123"))
	require.NoError(t, conn.Close())

	// Values survive a restart.
	conn, err = InitSQLite(path)
	require.NoError(t, err)
	defer conn.Close()

	got, err := repository.NewSQLCredentialStore(conn).Get(ctx, "password_hash")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)
}
