package out_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wikigo/internal/modules/leaderboard/domain"
	leaderboardout "wikigo/internal/modules/leaderboard/port/out"
	apperrors "wikigo/internal/platform/errors"
)

var (
	march14 = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	noon    = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

func record(user string, score, moves, timeMs int, at time.Time) domain.CompletionRecord {
	history := make([]string, moves+1)
	for i := range history {
		history[i] = "Page " + string(rune('A'+i))
	}
	return domain.CompletionRecord{
		Username:    user,
		Date:        march14,
		Moves:       moves,
		TimeMs:      timeMs,
		Score:       score,
		History:     history,
		SubmittedAt: at,
	}
}

func checkLeaderboardOrdering(t *testing.T, store leaderboardout.CompletionStore) {
	t.Helper()
	ctx := context.Background()

	for _, r := range []domain.CompletionRecord{
		record("carol", 950, 3, 20_000, noon.Add(3*time.Minute)),
		record("bob", 950, 3, 20_000, noon.Add(time.Minute)),
		record("alice", 950, 2, 30_000, noon.Add(5*time.Minute)),
		record("dave", 980, 1, 10_000, noon.Add(9*time.Minute)),
		record("erin", 950, 3, 19_000, noon.Add(7*time.Minute)),
	} {
		stored, err := store.SubmitCompletion(ctx, r)
		require.NoError(t, err)
		require.True(t, stored)
	}

	top, err := store.QueryLeaderboard(ctx, march14, 10, 0)
	require.NoError(t, err)
	var names []string
	for _, r := range top {
		names = append(names, r.Username)
	}
	require.Equal(t, []string{"dave", "alice", "erin", "bob", "carol"}, names)
	require.Len(t, top[1].History, 3)
	require.True(t, top[0].SubmittedAt.Equal(noon.Add(9*time.Minute)))

	page, err := store.QueryLeaderboard(ctx, march14, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "erin", page[0].Username)

	rank, err := store.QueryUserRank(ctx, "carol", march14)
	require.NoError(t, err)
	require.NotNil(t, rank)
	require.Equal(t, 2, *rank, "ties share the competition rank")

	missing, err := store.QueryUserRank(ctx, "zed", march14)
	require.NoError(t, err)
	require.Nil(t, missing)

	stats, err := store.DailyStats(ctx, march14)
	require.NoError(t, err)
	require.Equal(t, 5, stats.CompletionCount)
	require.InDelta(t, 956.0, stats.AverageScore, 0.001)
	require.InDelta(t, 2.4, stats.AverageMoves, 0.001)
}

func checkKeepsBestResult(t *testing.T, store leaderboardout.CompletionStore) {
	t.Helper()
	ctx := context.Background()

	stored, err := store.SubmitCompletion(ctx, record("ada", 940, 3, 30_000, noon))
	require.NoError(t, err)
	require.True(t, stored)

	stored, err = store.SubmitCompletion(ctx, record("ada", 900, 5, 50_000, noon.Add(time.Hour)))
	require.NoError(t, err)
	require.False(t, stored, "worse result must not replace the stored one")

	stored, err = store.SubmitCompletion(ctx, record("ada", 940, 3, 30_000, noon.Add(2*time.Hour)))
	require.NoError(t, err)
	require.False(t, stored, "equal result is a no-op")

	stored, err = store.SubmitCompletion(ctx, record("ada", 940, 3, 29_000, noon.Add(3*time.Hour)))
	require.NoError(t, err)
	require.True(t, stored, "faster time at equal score and moves wins")

	top, err := store.QueryLeaderboard(ctx, march14, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, 29_000, top[0].TimeMs)
	require.True(t, top[0].SubmittedAt.Equal(noon.Add(3*time.Hour)))
}

func checkEmptyDay(t *testing.T, store leaderboardout.CompletionStore) {
	t.Helper()
	ctx := context.Background()

	top, err := store.QueryLeaderboard(ctx, march14, 10, 0)
	require.NoError(t, err)
	require.Empty(t, top)

	stats, err := store.DailyStats(ctx, march14)
	require.NoError(t, err)
	require.Zero(t, stats.CompletionCount)
	require.Zero(t, stats.AverageScore)
}

func checkCompletionDates(t *testing.T, store leaderboardout.CompletionStore) {
	t.Helper()
	ctx := context.Background()
	for i := range 3 {
		r := record("ada", 900, 2, 10_000, noon)
		r.Date = march14.AddDate(0, 0, -i)
		_, err := store.SubmitCompletion(ctx, r)
		require.NoError(t, err)
	}
	dates, err := store.CompletionDates(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, dates, 3)
	for i, d := range dates {
		require.True(t, d.Equal(march14.AddDate(0, 0, -i)), "date %d = %s", i, d)
	}
}

func checkDailyStore(t *testing.T, dailies leaderboardout.DailyChallengeStore) {
	t.Helper()
	ctx := context.Background()

	_, err := dailies.GetDaily(ctx, march14)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))

	challenge := domain.DailyChallenge{Date: march14, StartTitle: "Alan Turing", GoalTitle: "Machine Learning", Hint: "think computers"}
	require.NoError(t, dailies.PutDaily(ctx, challenge))
	challenge.GoalTitle = "Statistics"
	require.NoError(t, dailies.PutDaily(ctx, challenge))
	require.NoError(t, dailies.PutDaily(ctx, domain.DailyChallenge{Date: march14.AddDate(0, 0, 1), StartTitle: "Moon", GoalTitle: "Tide"}))

	got, err := dailies.GetDaily(ctx, march14)
	require.NoError(t, err)
	require.Equal(t, "Statistics", got.GoalTitle)
	require.Equal(t, "think computers", got.Hint)

	all, err := dailies.ListDaily(ctx, march14, march14.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, all, 2)
}
