package in

import (
	"context"

	"wikigo/internal/modules/leaderboard/dto"
	leaderboardin "wikigo/internal/modules/leaderboard/port/in"
)

type CLIHandler struct {
	usecase leaderboardin.Usecase
}

func NewCLIHandler(usecase leaderboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Leaderboard(ctx context.Context, date string, limit, offset int) ([]dto.EntryOutput, error) {
	return h.usecase.Leaderboard(ctx, dto.LeaderboardQuery{Date: date, Limit: limit, Offset: offset})
}

func (h CLIHandler) Rank(ctx context.Context, username, date string) (dto.RankOutput, error) {
	return h.usecase.UserRank(ctx, username, date)
}

func (h CLIHandler) Stats(ctx context.Context, username string) (dto.UserStatsOutput, error) {
	return h.usecase.UserStats(ctx, username)
}

func (h CLIHandler) Daily(ctx context.Context, date string) (dto.DailyOutput, error) {
	return h.usecase.Daily(ctx, date)
}

func (h CLIHandler) SetDaily(ctx context.Context, input dto.SetDailyInput) (dto.DailyOutput, error) {
	return h.usecase.SetDaily(ctx, input)
}

func (h CLIHandler) DailyStats(ctx context.Context, date string) (dto.DailyStatsOutput, error) {
	return h.usecase.DailyStats(ctx, date)
}

func (h CLIHandler) Yesterday(ctx context.Context) (dto.YesterdayOutput, error) {
	return h.usecase.Yesterday(ctx)
}
