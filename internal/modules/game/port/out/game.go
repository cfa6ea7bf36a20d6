package out

import (
	"context"

	"wikigo/internal/modules/game/domain"
)

type RunJournal interface {
	Save(ctx context.Context, run domain.RunRecord) (string, error)
	// List returns the most recent runs first.
	List(ctx context.Context, limit int) ([]domain.RunRecord, []string, error)
}
