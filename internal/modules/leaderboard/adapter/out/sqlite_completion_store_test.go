package out_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	leaderboardadapter "wikigo/internal/modules/leaderboard/adapter/out"
	leaderboardout "wikigo/internal/modules/leaderboard/port/out"
	"wikigo/internal/platform/sqlitedb"
)

func openSQLiteStores(t *testing.T) (leaderboardout.CompletionStore, leaderboardout.DailyChallengeStore) {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "wikigo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	completions, err := leaderboardadapter.NewSQLiteCompletionStore(db)
	require.NoError(t, err)
	dailies, err := leaderboardadapter.NewSQLiteDailyStore(db)
	require.NoError(t, err)
	return completions, dailies
}

func TestSQLiteCompletionStoreOrdering(t *testing.T) {
	t.Parallel()
	store, _ := openSQLiteStores(t)
	checkLeaderboardOrdering(t, store)
}

func TestSQLiteCompletionStoreKeepsBestResult(t *testing.T) {
	t.Parallel()
	store, _ := openSQLiteStores(t)
	checkKeepsBestResult(t, store)
}

func TestSQLiteCompletionStoreEmptyDay(t *testing.T) {
	t.Parallel()
	store, _ := openSQLiteStores(t)
	checkEmptyDay(t, store)
}

func TestSQLiteCompletionStoreDates(t *testing.T) {
	t.Parallel()
	store, _ := openSQLiteStores(t)
	checkCompletionDates(t, store)
}

func TestSQLiteDailyStore(t *testing.T) {
	t.Parallel()
	_, dailies := openSQLiteStores(t)
	checkDailyStore(t, dailies)
}
