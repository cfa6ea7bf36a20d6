package in

import (
	"context"

	"wikigo/internal/modules/leaderboard/dto"
)

type Usecase interface {
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
	Leaderboard(ctx context.Context, query dto.LeaderboardQuery) ([]dto.EntryOutput, error)
	UserRank(ctx context.Context, username, date string) (dto.RankOutput, error)
	UserStats(ctx context.Context, username string) (dto.UserStatsOutput, error)
	Daily(ctx context.Context, date string) (dto.DailyOutput, error)
	SetDaily(ctx context.Context, input dto.SetDailyInput) (dto.DailyOutput, error)
	DailyStats(ctx context.Context, date string) (dto.DailyStatsOutput, error)
	Yesterday(ctx context.Context) (dto.YesterdayOutput, error)
}
