package out_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	practiceadapter "wikigo/internal/modules/practice/adapter/out"
	practiceout "wikigo/internal/modules/practice/port/out"
	"wikigo/internal/platform/pgdb/pgdbtest"
)

func openPostgresStore(t *testing.T) practiceout.PracticeStore {
	t.Helper()
	store, err := practiceadapter.NewPostgresPracticeStore(context.Background(), pgdbtest.Open(t))
	require.NoError(t, err)
	return store
}

func TestPostgresPracticeStoreStatusNeverDowngrades(t *testing.T) {
	t.Parallel()
	checkStatusNeverDowngrades(t, openPostgresStore(t))
}

func TestPostgresPracticeStoreListsNewestFirst(t *testing.T) {
	t.Parallel()
	checkListGamesNewestFirst(t, openPostgresStore(t))
}
