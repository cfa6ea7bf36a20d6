package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wikigo/internal/modules/game/domain"
)

func TestScoreExample(t *testing.T) {
	t.Parallel()
	require.Equal(t, 925, domain.Score(3, 45000))
	require.Equal(t, 1000, domain.Score(0, 999))
	require.Equal(t, 999, domain.Score(0, 1000))
}

func TestScoreIsMonotonicAndFloored(t *testing.T) {
	t.Parallel()
	for moves := 0; moves < 120; moves += 7 {
		for ms := 0; ms < 1_200_000; ms += 12_345 {
			s := domain.Score(moves, ms)
			require.GreaterOrEqual(t, s, 0)
			require.LessOrEqual(t, domain.Score(moves+1, ms), s)
			require.LessOrEqual(t, domain.Score(moves, ms+1000), s)
		}
	}
	require.Equal(t, 0, domain.Score(200, 0))
	require.Equal(t, 0, domain.Score(0, 5_000_000))
}

func TestScoreBreakdownMatchesScore(t *testing.T) {
	t.Parallel()
	b := domain.ScoreBreakdown(4, 61_900)
	require.Equal(t, 1000, b.Base)
	require.Equal(t, 40, b.MovePenalty)
	require.Equal(t, 61, b.TimePenalty)
	require.Equal(t, domain.Score(4, 61_900), b.Final)
	require.Equal(t, b.Base-b.MovePenalty-b.TimePenalty, b.Final)
}
