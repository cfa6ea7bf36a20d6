package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	wikiadapter "wikigo/internal/modules/wiki/adapter/out"
	"wikigo/internal/modules/wiki/domain"
	"wikigo/internal/platform/sqlitedb"
)

func TestSQLiteSummaryCacheRoundTrip(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "wikigo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cache, err := wikiadapter.NewSQLiteSummaryCache(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "moon")
	require.NoError(t, err)
	require.False(t, ok)

	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := domain.CachedSummary{
		Summary:   domain.Summary{Title: "Moon", Extract: "Satellite", PageURL: "https://en.wikipedia.org/wiki/Moon"},
		FetchedAt: fetched,
	}
	require.NoError(t, cache.Put(ctx, "moon", entry))
	entry.Summary.Extract = "Earth's satellite"
	require.NoError(t, cache.Put(ctx, "moon", entry))

	got, ok, err := cache.Get(ctx, "moon")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Earth's satellite", got.Summary.Extract)
	require.True(t, got.FetchedAt.Equal(fetched))

	require.NoError(t, cache.Delete(ctx, "moon"))
	_, ok, err = cache.Get(ctx, "moon")
	require.NoError(t, err)
	require.False(t, ok)
}
