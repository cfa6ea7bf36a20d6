package in

import (
	"context"

	"wikigo/internal/modules/wiki/dto"
)

type Usecase interface {
	// Summary returns nil without error when the article does not exist.
	Summary(ctx context.Context, title string) (*dto.SummaryOutput, error)
	Exists(ctx context.Context, title string) (dto.ExistenceOutput, error)
	ValidatePair(ctx context.Context, start, goal string) (dto.PairOutput, error)
	Article(ctx context.Context, title string) (dto.ArticleOutput, error)
	RandomTitle(ctx context.Context, category string) (string, error)
	// ParseTitle validates a decoded title. It never percent-decodes.
	ParseTitle(raw string) (string, error)
	Open(ctx context.Context, title string) (string, error)
}
