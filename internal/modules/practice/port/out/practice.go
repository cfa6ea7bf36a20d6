package out

import (
	"context"

	"wikigo/internal/modules/practice/domain"
)

type PracticeStore interface {
	ListGames(ctx context.Context, limit int) ([]domain.Game, error)
	GetGame(ctx context.Context, id string) (domain.Game, error)
	PutGame(ctx context.Context, game domain.Game) error
	Status(ctx context.Context, username, gameID string) (domain.Status, error)
	Statuses(ctx context.Context, username string) (map[string]domain.Status, error)
	MarkCompleted(ctx context.Context, username, gameID string) error
	MarkSolutionViewed(ctx context.Context, username, gameID string) error
}

type SeedSource interface {
	Load(ctx context.Context, path string) ([]domain.Game, error)
}
