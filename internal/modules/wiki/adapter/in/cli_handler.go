package in

import (
	"context"
	"slices"

	"wikigo/internal/modules/wiki/dto"
	wikiin "wikigo/internal/modules/wiki/port/in"
)

type CLIHandler struct {
	usecase wikiin.Usecase
}

func NewCLIHandler(usecase wikiin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context, title string) (*dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, title)
}

func (h CLIHandler) Exists(ctx context.Context, title string) (dto.ExistenceOutput, error) {
	return h.usecase.Exists(ctx, title)
}

func (h CLIHandler) Links(ctx context.Context, title string) (string, []string, error) {
	article, err := h.usecase.Article(ctx, title)
	if err != nil {
		return "", nil, err
	}
	return article.Title, slices.Collect(article.Links), nil
}

func (h CLIHandler) Random(ctx context.Context, category string) (string, error) {
	return h.usecase.RandomTitle(ctx, category)
}

func (h CLIHandler) Open(ctx context.Context, title string) (string, error) {
	return h.usecase.Open(ctx, title)
}
