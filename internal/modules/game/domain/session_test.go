package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wikigo/internal/modules/game/domain"
	apperrors "wikigo/internal/platform/errors"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func started(t *testing.T, start, goal string) domain.Session {
	t.Helper()
	s, err := domain.Reduce(domain.NewSession("sess-1", 1, domain.ModeRandom), domain.Started{Start: start, Goal: goal, At: t0})
	require.NoError(t, err)
	return s
}

func TestHistoryInvariantHoldsAfterEveryMove(t *testing.T) {
	t.Parallel()
	s := started(t, "Moon", "Volcano")
	require.Equal(t, 0, s.MoveCount())
	for i, title := range []string{"Earth", "Moon", "Earth", "Geology"} {
		var err error
		s, err = domain.Reduce(s, domain.Navigated{Title: title, At: t0.Add(time.Duration(i+1) * time.Second)})
		require.NoError(t, err)
		require.Equal(t, len(s.History)-1, s.MoveCount())
		require.Equal(t, "Moon", s.History[0])
		require.Equal(t, domain.StatusActive, s.Status)
	}
	require.Equal(t, 4, s.MoveCount())
}

func TestWinDetectionIgnoresCase(t *testing.T) {
	t.Parallel()
	s := started(t, "Moon", "Machine Learning")
	s, err := domain.Reduce(s, domain.Navigated{Title: "machine learning", At: t0.Add(10 * time.Second)})
	require.NoError(t, err)
	require.Equal(t, domain.StatusWon, s.Status)
	require.Equal(t, domain.Score(1, 10_000), s.FinalScore)
}

func TestTimerFreezesAtWin(t *testing.T) {
	t.Parallel()
	s := started(t, "Moon", "Earth")
	require.Equal(t, 5000, s.ElapsedMs(t0.Add(5*time.Second)))

	s, err := domain.Reduce(s, domain.Navigated{Title: "Earth", At: t0.Add(42_500 * time.Millisecond)})
	require.NoError(t, err)
	require.Equal(t, 42_500, s.ElapsedMs(t0.Add(time.Hour)))
	require.Equal(t, 42_500, s.ElapsedMs(t0.Add(48*time.Hour)))
}

func TestReduceRejectsInvalidTransitions(t *testing.T) {
	t.Parallel()
	setup := domain.NewSession("sess-1", 1, domain.ModeRandom)
	got, err := domain.Reduce(setup, domain.Navigated{Title: "Earth", At: t0})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	require.Equal(t, setup, got)

	won := started(t, "Moon", "Earth")
	won, err = domain.Reduce(won, domain.Navigated{Title: "Earth", At: t0.Add(time.Second)})
	require.NoError(t, err)
	after, err := domain.Reduce(won, domain.Navigated{Title: "Sun", At: t0.Add(2 * time.Second)})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	require.Equal(t, won.History, after.History)

	_, err = domain.Reduce(won, domain.Started{Start: "A", Goal: "B", At: t0})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestReduceDoesNotAliasHistory(t *testing.T) {
	t.Parallel()
	s := started(t, "Moon", "Earth")
	next, err := domain.Reduce(s, domain.Navigated{Title: "Sun", At: t0.Add(time.Second)})
	require.NoError(t, err)
	require.Len(t, s.History, 1)
	require.Len(t, next.History, 2)
}

func TestCheckInvariantsFlagsCorruption(t *testing.T) {
	t.Parallel()
	s := started(t, "Moon", "Earth")
	s.History[0] = "Mars"
	require.ErrorIs(t, s.CheckInvariants(), apperrors.ErrInvariant)

	empty := started(t, "Moon", "Earth")
	empty.History = nil
	require.ErrorIs(t, empty.CheckInvariants(), apperrors.ErrInvariant)
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()
	s := started(t, "Alan Turing", "Machine Learning")
	clicks := []string{"Computer Science", "Artificial Intelligence", "Machine Learning"}
	at := t0
	for _, title := range clicks {
		at = at.Add(7300 * time.Millisecond)
		var err error
		s, err = domain.Reduce(s, domain.Navigated{Title: title, At: at})
		require.NoError(t, err)
	}
	require.Equal(t, domain.StatusWon, s.Status)
	require.Equal(t, 3, s.MoveCount())
	require.Equal(t, []string{"Alan Turing", "Computer Science", "Artificial Intelligence", "Machine Learning"}, s.History)
	elapsed := s.ElapsedMs(at.Add(time.Minute))
	require.Equal(t, 21_900, elapsed)
	require.Equal(t, 1000-30-elapsed/1000, s.FinalScore)
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	m, err := domain.ParseMode("Daily")
	require.NoError(t, err)
	require.Equal(t, domain.ModeDaily, m)
	_, err = domain.ParseMode("ranked")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
