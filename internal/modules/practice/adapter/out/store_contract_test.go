package out_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wikigo/internal/modules/practice/domain"
	practiceout "wikigo/internal/modules/practice/port/out"
	apperrors "wikigo/internal/platform/errors"
)

func checkStatusNeverDowngrades(t *testing.T, store practiceout.PracticeStore) {
	t.Helper()
	ctx := context.Background()

	game := domain.Game{ID: "g1", StartTitle: "Moon", GoalTitle: "Sun", SolutionHistory: []string{"Moon", "Sun"}, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, store.PutGame(ctx, game))

	got, err := store.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, game, got)

	_, err = store.GetGame(ctx, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	status, err := store.Status(ctx, "ada", "g1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusAvailable, status)

	require.NoError(t, store.MarkSolutionViewed(ctx, "ada", "g1"))
	require.NoError(t, store.MarkCompleted(ctx, "ada", "g1"))
	require.NoError(t, store.MarkSolutionViewed(ctx, "ada", "g1"))

	status, err = store.Status(ctx, "ada", "g1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, status)

	statuses, err := store.Statuses(ctx, "ada")
	require.NoError(t, err)
	require.Equal(t, map[string]domain.Status{"g1": domain.StatusCompleted}, statuses)
}

func checkListGamesNewestFirst(t *testing.T, store practiceout.PracticeStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.PutGame(ctx, domain.Game{ID: id, StartTitle: "Moon", GoalTitle: "Sun", CreatedAt: base.AddDate(0, 0, i)}))
	}
	games, err := store.ListGames(ctx, 2)
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, "new", games[0].ID)
	require.Equal(t, "mid", games[1].ID)
}
