package in

import (
	"context"

	"wikigo/internal/modules/game/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.PlayOutput, error)
	// Navigate follows a link from the current article. Target is a decoded
	// title that must appear among the current article's links. Results
	// computed for an older generation are discarded with ErrStaleResult.
	Navigate(ctx context.Context, input dto.NavigateInput) (dto.PlayOutput, error)
	Current(ctx context.Context) (dto.SessionOutput, error)
	Reset(ctx context.Context) (dto.SessionOutput, error)
	Result(ctx context.Context) (dto.ResultOutput, error)
	// SubmitResult runs the win side effects once per session. Leaderboard
	// failures are reported in the output, never undo the win, and are
	// retried by calling SubmitResult again.
	SubmitResult(ctx context.Context) (dto.SubmitOutput, error)
	DecodeChallenge(raw string) (dto.ChallengeOutput, bool)
	CompareChallenge(finalScore int, raw string) (dto.ComparisonOutput, bool)
	Score(moves, elapsedMs int) dto.ScoreOutput
	Runs(ctx context.Context, limit int) ([]dto.RunOutput, error)
}
