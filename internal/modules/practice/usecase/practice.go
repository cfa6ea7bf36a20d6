package usecase

import (
	"context"
	"slices"

	"wikigo/internal/modules/practice/domain"
	"wikigo/internal/modules/practice/dto"
	practicein "wikigo/internal/modules/practice/port/in"
	"wikigo/internal/modules/practice/service"
	wikiin "wikigo/internal/modules/wiki/port/in"
)

type Interactor struct {
	svc  *service.PracticeService
	wiki wikiin.Usecase
}

func NewInteractor(svc *service.PracticeService, wiki wikiin.Usecase) practicein.Usecase {
	return &Interactor{svc: svc, wiki: wiki}
}

func (i *Interactor) ListGames(ctx context.Context, username string, limit int) ([]dto.GameOutput, error) {
	games, err := i.svc.List(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GameOutput, 0, len(games))
	for _, g := range games {
		out = append(out, toOutput(g))
	}
	return out, nil
}

func (i *Interactor) GetGame(ctx context.Context, username, id string) (dto.GameOutput, error) {
	g, err := i.svc.Get(ctx, username, id)
	if err != nil {
		return dto.GameOutput{}, err
	}
	return toOutput(g), nil
}

// AddGame checks both titles against the wiki when one is wired and stores
// the canonical names.
func (i *Interactor) AddGame(ctx context.Context, input dto.AddGameInput) (dto.GameOutput, error) {
	game := domain.Game{ID: input.ID, StartTitle: input.Start, GoalTitle: input.Goal, SolutionHistory: slices.Clone(input.Solution)}
	if i.wiki != nil {
		pair, err := i.wiki.ValidatePair(ctx, input.Start, input.Goal)
		if err != nil {
			return dto.GameOutput{}, err
		}
		game.StartTitle = pair.Start.CanonicalTitle
		game.GoalTitle = pair.Goal.CanonicalTitle
	}
	stored, err := i.svc.Add(ctx, game)
	if err != nil {
		return dto.GameOutput{}, err
	}
	return toOutput(service.GameWithStatus{Game: stored, Status: domain.StatusAvailable}), nil
}

func (i *Interactor) Seed(ctx context.Context, path string) (int, error) {
	return i.svc.Seed(ctx, path)
}

func (i *Interactor) MarkCompleted(ctx context.Context, username, id string) error {
	return i.svc.MarkCompleted(ctx, username, id)
}

func (i *Interactor) ViewSolution(ctx context.Context, username, id string) (dto.GameOutput, error) {
	g, err := i.svc.ViewSolution(ctx, username, id)
	if err != nil {
		return dto.GameOutput{}, err
	}
	return toOutput(g), nil
}

func toOutput(g service.GameWithStatus) dto.GameOutput {
	out := dto.GameOutput{
		ID:         g.Game.ID,
		StartTitle: g.Game.StartTitle,
		GoalTitle:  g.Game.GoalTitle,
		Status:     string(g.Status),
		CreatedAt:  g.Game.CreatedAt,
	}
	if g.Status != domain.StatusAvailable {
		out.Solution = slices.Clone(g.Game.SolutionHistory)
	}
	return out
}
