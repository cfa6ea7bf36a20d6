package domain_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wikigo/internal/modules/leaderboard/domain"
	apperrors "wikigo/internal/platform/errors"
)

func TestLessOrdersByTieBreakChain(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	records := []domain.CompletionRecord{
		{Username: "eve", Score: 900, Moves: 5, TimeMs: 50_000, SubmittedAt: at},
		{Username: "bob", Score: 950, Moves: 4, TimeMs: 10_000, SubmittedAt: at},
		{Username: "dan", Score: 900, Moves: 4, TimeMs: 60_000, SubmittedAt: at},
		{Username: "cat", Score: 900, Moves: 4, TimeMs: 60_000, SubmittedAt: at.Add(-time.Minute)},
		{Username: "amy", Score: 900, Moves: 4, TimeMs: 60_000, SubmittedAt: at},
	}
	slices.SortFunc(records, func(a, b domain.CompletionRecord) int {
		switch {
		case domain.Less(a, b):
			return -1
		case domain.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	var names []string
	for _, r := range records {
		names = append(names, r.Username)
	}
	require.Equal(t, []string{"bob", "cat", "amy", "dan", "eve"}, names)
}

func TestImproves(t *testing.T) {
	t.Parallel()
	current := domain.CompletionRecord{Score: 900, Moves: 4, TimeMs: 60_000}
	require.True(t, domain.Improves(domain.CompletionRecord{Score: 901, Moves: 9, TimeMs: 1}, current))
	require.False(t, domain.Improves(current, current))
	require.False(t, domain.Improves(domain.CompletionRecord{Score: 899}, current))
}

func TestCompetitionRank(t *testing.T) {
	t.Parallel()
	scores := []int{990, 950, 950, 900}
	require.Equal(t, 1, domain.CompetitionRank(990, scores))
	require.Equal(t, 2, domain.CompetitionRank(950, scores))
	require.Equal(t, 4, domain.CompetitionRank(900, scores))
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()
	ok := domain.CompletionRecord{Username: "ada", Date: time.Now(), Moves: 2, TimeMs: 1000, Score: 979, History: []string{"A", "B", "C"}}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Username = " "
	require.ErrorIs(t, bad.Validate(), apperrors.ErrInvalidInput)
	bad = ok
	bad.History = []string{"A"}
	require.ErrorIs(t, bad.Validate(), apperrors.ErrInvalidInput)
}
