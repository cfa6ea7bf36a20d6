package in

import (
	"context"

	"wikigo/internal/modules/practice/dto"
)

type Usecase interface {
	ListGames(ctx context.Context, username string, limit int) ([]dto.GameOutput, error)
	GetGame(ctx context.Context, username, id string) (dto.GameOutput, error)
	AddGame(ctx context.Context, input dto.AddGameInput) (dto.GameOutput, error)
	Seed(ctx context.Context, path string) (int, error)
	MarkCompleted(ctx context.Context, username, id string) error
	ViewSolution(ctx context.Context, username, id string) (dto.GameOutput, error)
}
