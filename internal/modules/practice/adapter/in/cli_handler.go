package in

import (
	"context"

	"wikigo/internal/modules/practice/dto"
	practicein "wikigo/internal/modules/practice/port/in"
)

type CLIHandler struct {
	usecase practicein.Usecase
}

func NewCLIHandler(usecase practicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, username string, limit int) ([]dto.GameOutput, error) {
	return h.usecase.ListGames(ctx, username, limit)
}

func (h CLIHandler) Seed(ctx context.Context, path string) (int, error) {
	return h.usecase.Seed(ctx, path)
}

func (h CLIHandler) Add(ctx context.Context, id, start, goal string, solution []string) (dto.GameOutput, error) {
	return h.usecase.AddGame(ctx, dto.AddGameInput{ID: id, Start: start, Goal: goal, Solution: solution})
}

func (h CLIHandler) Solution(ctx context.Context, username, id string) (dto.GameOutput, error) {
	return h.usecase.ViewSolution(ctx, username, id)
}
