package usecase_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"wikigo/internal/modules/wiki/domain"
	"wikigo/internal/modules/wiki/service"
	"wikigo/internal/modules/wiki/usecase"
	apperrors "wikigo/internal/platform/errors"
)

type staticClock struct{}

func (staticClock) Now() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

type pagesSource struct {
	pages map[string][]string
}

func (p pagesSource) FetchSummary(context.Context, string) (*domain.Summary, error) { return nil, nil }

func (p pagesSource) PageInfo(_ context.Context, title string) (domain.PageInfo, error) {
	_, ok := p.pages[title]
	return domain.PageInfo{Title: title, Missing: !ok}, nil
}

func (p pagesSource) HasContentLinks(_ context.Context, title string) (bool, error) {
	return len(p.pages[title]) > 0, nil
}

func (p pagesSource) RenderedHTML(_ context.Context, title string) (string, string, error) {
	return title, title, nil
}

func (p pagesSource) RandomTitle(context.Context) (string, error) { return "", errors.New("unused") }

func (p pagesSource) CategoryMembers(context.Context, string) ([]string, error) { return nil, nil }

type mapExtractor struct {
	pages map[string][]string
}

func (m mapExtractor) Extract(html string) ([]string, error) { return m.pages[html], nil }

func newInteractor() *usecase.Interactor {
	pages := map[string][]string{
		"Moon":  {"/wiki/Earth", "/wiki/Sun"},
		"Earth": {"/wiki/Moon"},
		"Stub":  nil,
	}
	svc := service.NewWikiService(staticClock{}, pagesSource{pages: pages}, mapExtractor{pages: pages}, nil, nil, service.Options{
		PageBaseURL: "https://en.wikipedia.org/wiki/",
	})
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestValidatePair(t *testing.T) {
	t.Parallel()
	uc := newInteractor()
	ctx := context.Background()

	pair, err := uc.ValidatePair(ctx, "Moon", "Earth")
	if err != nil {
		t.Fatalf("validate pair: %v", err)
	}
	if !pair.Start.Exists || !pair.Goal.Exists {
		t.Fatalf("expected both to exist: %+v", pair)
	}

	for _, tc := range [][2]string{{"Moon", "Nowhere"}, {"Stub", "Earth"}, {"Moon", "moon"}} {
		if _, err := uc.ValidatePair(ctx, tc[0], tc[1]); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("pair %v: expected ErrInvalidInput, got %v", tc, err)
		}
	}
}

func TestArticleLinksAreRestartable(t *testing.T) {
	t.Parallel()
	uc := newInteractor()
	article, err := uc.Article(context.Background(), "Moon")
	if err != nil {
		t.Fatalf("article: %v", err)
	}
	first := slices.Collect(article.Links)
	second := slices.Collect(article.Links)
	if !slices.Equal(first, []string{"Earth", "Sun"}) || !slices.Equal(first, second) {
		t.Fatalf("links not restartable: %v then %v", first, second)
	}
	if article.LinkCount != 2 || article.PageURL != "https://en.wikipedia.org/wiki/Moon" {
		t.Fatalf("unexpected article: %+v", article)
	}
}
