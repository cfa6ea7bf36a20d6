package out

import (
	"context"
	"time"

	"wikigo/internal/modules/leaderboard/domain"
)

type CompletionStore interface {
	// SubmitCompletion keeps the best record per (username, date). It reports
	// whether the stored row changed.
	SubmitCompletion(ctx context.Context, record domain.CompletionRecord) (bool, error)
	QueryLeaderboard(ctx context.Context, date time.Time, limit, offset int) ([]domain.CompletionRecord, error)
	// QueryUserRank returns nil when the user has no record for date.
	QueryUserRank(ctx context.Context, username string, date time.Time) (*int, error)
	CompletionDates(ctx context.Context, username string) ([]time.Time, error)
	// DailyStats fills counts and averages. Best is left to the caller.
	DailyStats(ctx context.Context, date time.Time) (domain.DailyStats, error)
}

type DailyChallengeStore interface {
	GetDaily(ctx context.Context, date time.Time) (domain.DailyChallenge, error)
	PutDaily(ctx context.Context, challenge domain.DailyChallenge) error
	ListDaily(ctx context.Context, from, to time.Time) ([]domain.DailyChallenge, error)
}
