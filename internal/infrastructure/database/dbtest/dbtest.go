// Package dbtest opens throwaway databases for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"library-api/internal/infrastructure/database"
)

// NewSQLite returns a migrated file-backed sqlite database in t.TempDir.
func NewSQLite(t *testing.T) *database.DB {
	t.Helper()

	db := database.NewDB(&database.DBConfig{
		Driver:       database.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "library.db"),
		MaxOpenConns: 4,
		MaxRetries:   1,
		RetryDelay:   time.Millisecond,
	})

	ctx := context.Background()
	require.NoError(t, db.Connect(ctx))
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	return db
}
