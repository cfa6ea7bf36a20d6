package out

import (
	"context"

	"wikigo/internal/modules/wiki/domain"
)

type ArticleSource interface {
	// FetchSummary returns nil without error when the article does not exist.
	FetchSummary(ctx context.Context, title string) (*domain.Summary, error)
	PageInfo(ctx context.Context, title string) (domain.PageInfo, error)
	HasContentLinks(ctx context.Context, title string) (bool, error)
	RenderedHTML(ctx context.Context, title string) (canonical string, html string, err error)
	RandomTitle(ctx context.Context) (string, error)
	CategoryMembers(ctx context.Context, category string) ([]string, error)
}

type LinkExtractor interface {
	Extract(html string) ([]string, error)
}

type SummaryCache interface {
	Get(ctx context.Context, key string) (domain.CachedSummary, bool, error)
	Put(ctx context.Context, key string, entry domain.CachedSummary) error
	Delete(ctx context.Context, key string) error
}

type Launcher interface {
	Open(ctx context.Context, target string) error
}
