// Package testutil opens throwaway databases for tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/library-api/internal/repository/sqlconnect"
	"github.com/5w1tchy/library-api/internal/store/dbx"
)

// SQLiteDSN returns a DSN for a private in-memory database.
func SQLiteDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
}

// OpenSQLite returns an empty in-memory database with the schema applied.
// It is closed when the test ends.
func OpenSQLite(t testing.TB) (*sql.DB, dbx.Dialect) {
	t.Helper()
	db, dialect, err := sqlconnect.ConnectDB(t.Context(), sqlconnect.Config{Driver: "sqlite", DSN: SQLiteDSN()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbx.EnsureSchema(t.Context(), db, dialect))
	return db, dialect
}
