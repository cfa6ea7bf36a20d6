package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"wikigo/internal/modules/leaderboard/domain"
	leaderboardout "wikigo/internal/modules/leaderboard/port/out"
	"wikigo/internal/platform/clock"
	"wikigo/internal/platform/day"
	apperrors "wikigo/internal/platform/errors"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	YesterdayTop = 3
)

type LeaderboardService struct {
	clock       clock.Clock
	completions leaderboardout.CompletionStore
	dailies     leaderboardout.DailyChallengeStore
	log         hclog.Logger
}

func NewLeaderboardService(clk clock.Clock, completions leaderboardout.CompletionStore, dailies leaderboardout.DailyChallengeStore, log hclog.Logger) *LeaderboardService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &LeaderboardService{clock: clk, completions: completions, dailies: dailies, log: log.Named("leaderboard")}
}

func (s *LeaderboardService) Today() time.Time {
	return day.Today(s.clock)
}

// Submit stores record as the user's result for its date when it beats the
// stored one. Storage failures are reported as ErrSubmissionFailed.
func (s *LeaderboardService) Submit(ctx context.Context, record domain.CompletionRecord) (bool, *int, error) {
	record.Username = strings.TrimSpace(record.Username)
	if record.Date.IsZero() {
		record.Date = s.Today()
	}
	record.Date = day.Of(record.Date)
	record.SubmittedAt = s.clock.Now()
	if err := record.Validate(); err != nil {
		return false, nil, err
	}
	stored, err := s.completions.SubmitCompletion(ctx, record)
	if err != nil {
		s.log.Error("submission failed", "user", record.Username, "date", day.Format(record.Date), "error", err)
		return false, nil, fmt.Errorf("%w: %v", apperrors.ErrSubmissionFailed, err)
	}
	rank, err := s.completions.QueryUserRank(ctx, record.Username, record.Date)
	if err != nil {
		s.log.Warn("rank lookup after submission failed", "user", record.Username, "error", err)
		rank = nil
	}
	s.log.Info("completion submitted", "user", record.Username, "date", day.Format(record.Date), "score", record.Score, "stored", stored)
	return stored, rank, nil
}

func (s *LeaderboardService) Leaderboard(ctx context.Context, date time.Time, limit, offset int) ([]domain.CompletionRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", apperrors.ErrInvalidInput)
	}
	return s.completions.QueryLeaderboard(ctx, day.Of(date), limit, offset)
}

func (s *LeaderboardService) UserRank(ctx context.Context, username string, date time.Time) (*int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrInvalidInput)
	}
	return s.completions.QueryUserRank(ctx, username, day.Of(date))
}

// UserStats loads the completion history and today's rank concurrently.
func (s *LeaderboardService) UserStats(ctx context.Context, username string) (domain.UserStats, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.UserStats{}, fmt.Errorf("%w: username is required", apperrors.ErrInvalidInput)
	}
	today := s.Today()

	var (
		dates []time.Time
		rank  *int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dates, err = s.completions.CompletionDates(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		rank, err = s.completions.QueryUserRank(gctx, username, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.UserStats{}, err
	}
	return domain.UserStats{
		Username:         username,
		Streak:           domain.ComputeStreak(dates, today),
		TotalCompletions: domain.DistinctDays(dates),
		GlobalRank:       rank,
	}, nil
}

func (s *LeaderboardService) Daily(ctx context.Context, date time.Time) (domain.DailyChallenge, error) {
	return s.dailies.GetDaily(ctx, day.Of(date))
}

func (s *LeaderboardService) PutDaily(ctx context.Context, challenge domain.DailyChallenge) error {
	challenge.Date = day.Of(challenge.Date)
	if err := challenge.Validate(); err != nil {
		return err
	}
	if err := s.dailies.PutDaily(ctx, challenge); err != nil {
		return err
	}
	s.log.Info("daily challenge set", "date", day.Format(challenge.Date), "start", challenge.StartTitle, "goal", challenge.GoalTitle)
	return nil
}

func (s *LeaderboardService) ListDaily(ctx context.Context, from, to time.Time) ([]domain.DailyChallenge, error) {
	return s.dailies.ListDaily(ctx, day.Of(from), day.Of(to))
}

func (s *LeaderboardService) DailyStats(ctx context.Context, date time.Time) (domain.DailyStats, error) {
	date = day.Of(date)
	var (
		stats domain.DailyStats
		top   []domain.CompletionRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.completions.DailyStats(gctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.completions.QueryLeaderboard(gctx, date, 1, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DailyStats{}, err
	}
	stats.Date = date
	if len(top) > 0 {
		best := top[0]
		stats.Best = &best
	}
	return stats, nil
}

type Yesterday struct {
	Challenge *domain.DailyChallenge
	Stats     domain.DailyStats
	Top       []domain.CompletionRecord
}

// Yesterday gathers the previous day's challenge, aggregates and podium.
// A day without a configured challenge still reports its stats.
func (s *LeaderboardService) Yesterday(ctx context.Context) (Yesterday, error) {
	date := day.AddDays(s.Today(), -1)
	var out Yesterday
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		challenge, err := s.dailies.GetDaily(gctx, date)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out.Challenge = &challenge
		return nil
	})
	g.Go(func() error {
		var err error
		out.Stats, err = s.DailyStats(gctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		out.Top, err = s.completions.QueryLeaderboard(gctx, date, YesterdayTop, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return Yesterday{}, err
	}
	if out.Challenge != nil && len(out.Challenge.BestSolution) == 0 && out.Stats.Best != nil {
		out.Challenge.BestSolution = out.Stats.Best.History
	}
	return out, nil
}
