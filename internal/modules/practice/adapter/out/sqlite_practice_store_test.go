package out_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	practiceadapter "wikigo/internal/modules/practice/adapter/out"
	practiceout "wikigo/internal/modules/practice/port/out"
	"wikigo/internal/platform/sqlitedb"
)

func openSQLiteStore(t *testing.T) practiceout.PracticeStore {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "wikigo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store, err := practiceadapter.NewSQLitePracticeStore(db)
	require.NoError(t, err)
	return store
}

func TestSQLitePracticeStoreStatusNeverDowngrades(t *testing.T) {
	t.Parallel()
	checkStatusNeverDowngrades(t, openSQLiteStore(t))
}

func TestSQLitePracticeStoreListsNewestFirst(t *testing.T) {
	t.Parallel()
	checkListGamesNewestFirst(t, openSQLiteStore(t))
}
