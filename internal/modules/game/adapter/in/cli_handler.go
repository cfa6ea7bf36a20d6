package in

import (
	"context"

	"wikigo/internal/modules/game/dto"
	gamein "wikigo/internal/modules/game/port/in"
)

type CLIHandler struct {
	usecase gamein.Usecase
}

func NewCLIHandler(usecase gamein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) DecodeChallenge(raw string) (dto.ChallengeOutput, bool) {
	return h.usecase.DecodeChallenge(raw)
}

func (h CLIHandler) CompareChallenge(score int, raw string) (dto.ComparisonOutput, bool) {
	return h.usecase.CompareChallenge(score, raw)
}

func (h CLIHandler) Score(moves, elapsedMs int) dto.ScoreOutput {
	return h.usecase.Score(moves, elapsedMs)
}

func (h CLIHandler) Runs(ctx context.Context, limit int) ([]dto.RunOutput, error) {
	return h.usecase.Runs(ctx, limit)
}
