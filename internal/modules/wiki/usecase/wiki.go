package usecase

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"wikigo/internal/modules/wiki/domain"
	"wikigo/internal/modules/wiki/dto"
	wikiin "wikigo/internal/modules/wiki/port/in"
	"wikigo/internal/modules/wiki/service"
	apperrors "wikigo/internal/platform/errors"
)

type Interactor struct {
	svc *service.WikiService
}

func NewInteractor(svc *service.WikiService) wikiin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context, title string) (*dto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx, title)
	if err != nil || summary == nil {
		return nil, err
	}
	return &dto.SummaryOutput{
		Title:        summary.Title,
		Description:  summary.Description,
		Extract:      summary.Extract,
		ThumbnailURL: summary.ThumbnailURL,
		PageURL:      summary.PageURL,
	}, nil
}

func (i *Interactor) Exists(ctx context.Context, title string) (dto.ExistenceOutput, error) {
	existence, err := i.svc.Exists(ctx, title)
	if err != nil {
		return dto.ExistenceOutput{}, err
	}
	return toExistence(existence), nil
}

// ValidatePair checks start and goal concurrently. A pair that fails
// validation returns the per-title results together with ErrInvalidInput.
func (i *Interactor) ValidatePair(ctx context.Context, start, goal string) (dto.PairOutput, error) {
	var startRes, goalRes domain.Existence
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		startRes, err = i.svc.Exists(gctx, start)
		return err
	})
	g.Go(func() error {
		var err error
		goalRes, err = i.svc.Exists(gctx, goal)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.PairOutput{}, err
	}

	out := dto.PairOutput{Start: toExistence(startRes), Goal: toExistence(goalRes)}
	switch {
	case !startRes.Exists:
		return out, fmt.Errorf("%w: start article %q: %s", apperrors.ErrInvalidInput, start, startRes.Reason)
	case !goalRes.Exists:
		return out, fmt.Errorf("%w: goal article %q: %s", apperrors.ErrInvalidInput, goal, goalRes.Reason)
	case domain.SameTitle(startRes.CanonicalTitle, goalRes.CanonicalTitle):
		return out, fmt.Errorf("%w: start and goal must be different articles", apperrors.ErrInvalidInput)
	}
	return out, nil
}

func (i *Interactor) Article(ctx context.Context, title string) (dto.ArticleOutput, error) {
	article, err := i.svc.Article(ctx, title)
	if err != nil {
		return dto.ArticleOutput{}, err
	}
	links := slices.Clone(article.Links)
	return dto.ArticleOutput{
		Title:     article.Title,
		PageURL:   i.svc.PageURL(article.Title),
		Links:     slices.Values(links),
		LinkCount: len(links),
	}, nil
}

func (i *Interactor) RandomTitle(ctx context.Context, category string) (string, error) {
	return i.svc.RandomTitle(ctx, category)
}

func (i *Interactor) ParseTitle(raw string) (string, error) {
	return domain.ParseTitle(raw)
}

func (i *Interactor) Open(ctx context.Context, title string) (string, error) {
	return i.svc.Open(ctx, title)
}

func toExistence(e domain.Existence) dto.ExistenceOutput {
	return dto.ExistenceOutput{Exists: e.Exists, CanonicalTitle: e.CanonicalTitle, Reason: e.Reason}
}
