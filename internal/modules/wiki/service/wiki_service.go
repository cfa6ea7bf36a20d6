package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"wikigo/internal/modules/wiki/domain"
	wikiout "wikigo/internal/modules/wiki/port/out"
	"wikigo/internal/platform/clock"
	apperrors "wikigo/internal/platform/errors"
)

const hotCacheSize = 512

type Options struct {
	SummaryTTL  time.Duration
	PageBaseURL string
	Logger      hclog.Logger
}

type WikiService struct {
	clock     clock.Clock
	source    wikiout.ArticleSource
	extractor wikiout.LinkExtractor
	cache     wikiout.SummaryCache
	launcher  wikiout.Launcher
	ttl       time.Duration
	pageBase  string
	hot       *expirable.LRU[string, domain.CachedSummary]
	log       hclog.Logger
}

func NewWikiService(clk clock.Clock, source wikiout.ArticleSource, extractor wikiout.LinkExtractor, cache wikiout.SummaryCache, launcher wikiout.Launcher, opts Options) *WikiService {
	if opts.SummaryTTL <= 0 {
		opts.SummaryTTL = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &WikiService{
		clock:     clk,
		source:    source,
		extractor: extractor,
		cache:     cache,
		launcher:  launcher,
		ttl:       opts.SummaryTTL,
		pageBase:  opts.PageBaseURL,
		hot:       expirable.NewLRU[string, domain.CachedSummary](hotCacheSize, nil, opts.SummaryTTL),
		log:       opts.Logger.Named("wiki"),
	}
}

func (s *WikiService) Summary(ctx context.Context, title string) (*domain.Summary, error) {
	title = domain.NormalizeTitle(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	key := strings.ToLower(title)
	now := s.clock.Now()

	if entry, ok := s.hot.Get(key); ok && entry.Fresh(now, s.ttl) {
		summary := entry.Summary
		return &summary, nil
	}
	if s.cache != nil {
		entry, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("summary cache read failed", "title", title, "error", err)
		} else if ok {
			if entry.Fresh(now, s.ttl) {
				s.hot.Add(key, entry)
				summary := entry.Summary
				return &summary, nil
			}
			if err := s.cache.Delete(ctx, key); err != nil {
				s.log.Warn("summary cache evict failed", "title", title, "error", err)
			}
		}
	}

	summary, err := s.source.FetchSummary(ctx, title)
	if err != nil {
		return nil, fetchErr(err)
	}
	if summary == nil {
		return nil, nil
	}
	if summary.PageURL == "" {
		summary.PageURL = domain.PageURL(s.pageBase, summary.Title)
	}
	entry := domain.CachedSummary{Summary: *summary, FetchedAt: now}
	s.hot.Add(key, entry)
	if s.cache != nil {
		if err := s.cache.Put(ctx, key, entry); err != nil {
			s.log.Warn("summary cache write failed", "title", title, "error", err)
		}
	}
	return summary, nil
}

func (s *WikiService) Exists(ctx context.Context, title string) (domain.Existence, error) {
	title = domain.NormalizeTitle(title)
	if title == "" {
		return domain.Existence{Reason: "title is required"}, nil
	}
	if !domain.IsArticleTitle(title) {
		return domain.Existence{CanonicalTitle: title, Reason: "not a content article"}, nil
	}
	info, err := s.source.PageInfo(ctx, title)
	if err != nil {
		return domain.Existence{}, fetchErr(err)
	}
	canonical := info.Title
	if canonical == "" {
		canonical = title
	}
	if info.Invalid {
		return domain.Existence{CanonicalTitle: canonical, Reason: "invalid article title"}, nil
	}
	if info.Missing {
		return domain.Existence{CanonicalTitle: canonical, Reason: "article does not exist"}, nil
	}
	if !domain.IsArticleTitle(canonical) {
		return domain.Existence{CanonicalTitle: canonical, Reason: "not a content article"}, nil
	}
	hasLinks, err := s.source.HasContentLinks(ctx, canonical)
	if err != nil {
		return domain.Existence{}, fetchErr(err)
	}
	if !hasLinks {
		return domain.Existence{CanonicalTitle: canonical, Reason: "article has no links"}, nil
	}
	return domain.Existence{Exists: true, CanonicalTitle: canonical}, nil
}

func (s *WikiService) Article(ctx context.Context, title string) (domain.Article, error) {
	title = domain.NormalizeTitle(title)
	if !domain.IsArticleTitle(title) {
		return domain.Article{}, fmt.Errorf("%w: %s", apperrors.ErrNotArticle, title)
	}
	canonical, html, err := s.source.RenderedHTML(ctx, title)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Article{}, err
		}
		return domain.Article{}, fetchErr(err)
	}
	hrefs, err := s.extractor.Extract(html)
	if err != nil {
		return domain.Article{}, fmt.Errorf("extract links: %w", err)
	}
	if canonical == "" {
		canonical = title
	}
	seen := map[string]struct{}{}
	links := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		target, err := domain.ParseHref(href)
		if err != nil {
			continue
		}
		key := strings.ToLower(target)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, target)
	}
	s.log.Debug("article fetched", "title", canonical, "links", len(links))
	return domain.Article{Title: canonical, Links: links}, nil
}

func (s *WikiService) RandomTitle(ctx context.Context, category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		title, err := s.source.RandomTitle(ctx)
		if err != nil {
			return "", fetchErr(err)
		}
		return title, nil
	}
	members, err := s.source.CategoryMembers(ctx, category)
	if err != nil {
		return "", fetchErr(err)
	}
	candidates := make([]string, 0, len(members))
	for _, m := range members {
		if domain.IsArticleTitle(m) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: category %q has no articles", apperrors.ErrNotFound, category)
	}
	return candidates[rand.IntN(len(candidates))], nil
}

func (s *WikiService) Open(ctx context.Context, title string) (string, error) {
	title = domain.NormalizeTitle(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	target := domain.PageURL(s.pageBase, title)
	if s.launcher == nil {
		return target, nil
	}
	if err := s.launcher.Open(ctx, target); err != nil {
		return target, err
	}
	return target, nil
}

func (s *WikiService) PageURL(title string) string {
	return domain.PageURL(s.pageBase, title)
}

func fetchErr(err error) error {
	if errors.Is(err, apperrors.ErrFetchFailed) || errors.Is(err, apperrors.ErrResponseTooLarge) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
}
