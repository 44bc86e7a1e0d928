package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piyushKumar-1/betterbe/internal/store"
	"github.com/piyushKumar-1/betterbe/internal/store/storetest"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(db))
	return NewWithDB(db)
}

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestDDLStatements(t *testing.T) {
	stmts := ddlStatements()
	require.NotEmpty(t, stmts)
	for _, s := range stmts {
		require.NotContains(t, s, "--")
	}
}
