// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/healthtrack/internal/db"
)

const memoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// New returns a fresh, fully migrated database that is closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", memoryDSN)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close()
	})

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}
