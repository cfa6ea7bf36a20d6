package usecase

import (
	"context"
	"slices"
	"time"

	"wikigo/internal/modules/leaderboard/domain"
	"wikigo/internal/modules/leaderboard/dto"
	leaderboardin "wikigo/internal/modules/leaderboard/port/in"
	"wikigo/internal/modules/leaderboard/service"
	wikiin "wikigo/internal/modules/wiki/port/in"
	"wikigo/internal/platform/day"
)

type Interactor struct {
	svc  *service.LeaderboardService
	wiki wikiin.Usecase
}

// NewInteractor wires the leaderboard. wiki may be nil, in which case daily
// challenges are stored without checking the titles.
func NewInteractor(svc *service.LeaderboardService, wiki wikiin.Usecase) leaderboardin.Usecase {
	return &Interactor{svc: svc, wiki: wiki}
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error) {
	date, err := day.ParseOr(input.Date, i.svc.Today())
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	stored, rank, err := i.svc.Submit(ctx, domain.CompletionRecord{
		Username: input.Username,
		Date:     date,
		Moves:    input.Moves,
		TimeMs:   input.TimeMs,
		Score:    input.Score,
		History:  slices.Clone(input.History),
	})
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	return dto.SubmitOutput{Date: day.Format(date), Stored: stored, GlobalRank: rank}, nil
}

func (i *Interactor) Leaderboard(ctx context.Context, query dto.LeaderboardQuery) ([]dto.EntryOutput, error) {
	date, err := day.ParseOr(query.Date, i.svc.Today())
	if err != nil {
		return nil, err
	}
	records, err := i.svc.Leaderboard(ctx, date, query.Limit, query.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(records))
	for idx, record := range records {
		out = append(out, toEntry(record, query.Offset+idx+1))
	}
	return out, nil
}

func (i *Interactor) UserRank(ctx context.Context, username, date string) (dto.RankOutput, error) {
	d, err := day.ParseOr(date, i.svc.Today())
	if err != nil {
		return dto.RankOutput{}, err
	}
	rank, err := i.svc.UserRank(ctx, username, d)
	if err != nil {
		return dto.RankOutput{}, err
	}
	return dto.RankOutput{Username: username, Date: day.Format(d), Rank: rank}, nil
}

func (i *Interactor) UserStats(ctx context.Context, username string) (dto.UserStatsOutput, error) {
	stats, err := i.svc.UserStats(ctx, username)
	if err != nil {
		return dto.UserStatsOutput{}, err
	}
	return dto.UserStatsOutput{
		Username:         stats.Username,
		Streak:           stats.Streak,
		TotalCompletions: stats.TotalCompletions,
		GlobalRank:       stats.GlobalRank,
	}, nil
}

func (i *Interactor) Daily(ctx context.Context, date string) (dto.DailyOutput, error) {
	d, err := day.ParseOr(date, i.svc.Today())
	if err != nil {
		return dto.DailyOutput{}, err
	}
	challenge, err := i.svc.Daily(ctx, d)
	if err != nil {
		return dto.DailyOutput{}, err
	}
	return toDaily(challenge), nil
}

// SetDaily resolves both titles against the wiki before storing them, so
// redirects are saved under their canonical names.
func (i *Interactor) SetDaily(ctx context.Context, input dto.SetDailyInput) (dto.DailyOutput, error) {
	d, err := day.ParseOr(input.Date, i.svc.Today())
	if err != nil {
		return dto.DailyOutput{}, err
	}
	challenge := domain.DailyChallenge{Date: d, StartTitle: input.Start, GoalTitle: input.Goal, Hint: input.Hint}
	if err := challenge.Validate(); err != nil {
		return dto.DailyOutput{}, err
	}
	if i.wiki != nil {
		pair, err := i.wiki.ValidatePair(ctx, input.Start, input.Goal)
		if err != nil {
			return dto.DailyOutput{}, err
		}
		challenge.StartTitle = pair.Start.CanonicalTitle
		challenge.GoalTitle = pair.Goal.CanonicalTitle
	}
	if err := i.svc.PutDaily(ctx, challenge); err != nil {
		return dto.DailyOutput{}, err
	}
	return toDaily(challenge), nil
}

func (i *Interactor) DailyStats(ctx context.Context, date string) (dto.DailyStatsOutput, error) {
	d, err := day.ParseOr(date, i.svc.Today())
	if err != nil {
		return dto.DailyStatsOutput{}, err
	}
	stats, err := i.svc.DailyStats(ctx, d)
	if err != nil {
		return dto.DailyStatsOutput{}, err
	}
	return toStats(stats), nil
}

func (i *Interactor) Yesterday(ctx context.Context) (dto.YesterdayOutput, error) {
	y, err := i.svc.Yesterday(ctx)
	if err != nil {
		return dto.YesterdayOutput{}, err
	}
	out := dto.YesterdayOutput{Stats: toStats(y.Stats), Top: make([]dto.EntryOutput, 0, len(y.Top))}
	if y.Challenge != nil {
		daily := toDaily(*y.Challenge)
		out.Challenge = &daily
	}
	for idx, record := range y.Top {
		out.Top = append(out.Top, toEntry(record, idx+1))
	}
	return out, nil
}

func toEntry(record domain.CompletionRecord, position int) dto.EntryOutput {
	return dto.EntryOutput{
		Position:    position,
		Username:    record.Username,
		Date:        day.Format(record.Date),
		Moves:       record.Moves,
		TimeMs:      record.TimeMs,
		Score:       record.Score,
		History:     slices.Clone(record.History),
		SubmittedAt: record.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func toDaily(challenge domain.DailyChallenge) dto.DailyOutput {
	return dto.DailyOutput{
		Date:         day.Format(challenge.Date),
		StartTitle:   challenge.StartTitle,
		GoalTitle:    challenge.GoalTitle,
		Hint:         challenge.Hint,
		BestSolution: slices.Clone(challenge.BestSolution),
	}
}

func toStats(stats domain.DailyStats) dto.DailyStatsOutput {
	out := dto.DailyStatsOutput{
		Date:            day.Format(stats.Date),
		CompletionCount: stats.CompletionCount,
		AverageMoves:    stats.AverageMoves,
		AverageTimeMs:   stats.AverageTimeMs,
		AverageScore:    stats.AverageScore,
	}
	if stats.Best != nil {
		best := toEntry(*stats.Best, 1)
		out.Best = &best
	}
	return out
}
