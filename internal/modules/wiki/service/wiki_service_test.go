package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wikigo/internal/modules/wiki/domain"
	"wikigo/internal/modules/wiki/service"
	apperrors "wikigo/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeSource struct {
	summaries map[string]*domain.Summary
	fetches   int
	html      string
	err       error
}

func (f *fakeSource) FetchSummary(_ context.Context, title string) (*domain.Summary, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.summaries[title]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSource) PageInfo(_ context.Context, title string) (domain.PageInfo, error) {
	if title == "Luna" {
		return domain.PageInfo{Title: "Moon"}, nil
	}
	_, ok := f.summaries[title]
	return domain.PageInfo{Title: title, Missing: !ok}, nil
}

func (f *fakeSource) HasContentLinks(_ context.Context, title string) (bool, error) {
	return title != "Stub", nil
}

func (f *fakeSource) RenderedHTML(_ context.Context, title string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return domain.NormalizeTitle(title), f.html, nil
}

func (f *fakeSource) RandomTitle(context.Context) (string, error) { return "Volcano", nil }

func (f *fakeSource) CategoryMembers(context.Context, string) ([]string, error) {
	return []string{"Category:Nested", "Io"}, nil
}

type splitExtractor struct {
	hrefs []string
}

func (s splitExtractor) Extract(string) ([]string, error) { return s.hrefs, nil }

type memoryCache struct {
	entries map[string]domain.CachedSummary
	deleted []string
}

func (m *memoryCache) Get(_ context.Context, key string) (domain.CachedSummary, bool, error) {
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *memoryCache) Put(_ context.Context, key string, entry domain.CachedSummary) error {
	m.entries[key] = entry
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func newService(clk *fakeClock, source *fakeSource, cache *memoryCache, hrefs ...string) *service.WikiService {
	return service.NewWikiService(clk, source, splitExtractor{hrefs: hrefs}, cache, nil, service.Options{
		SummaryTTL:  24 * time.Hour,
		PageBaseURL: "https://en.wikipedia.org/wiki/",
	})
}

func TestSummaryIsCachedAndPersisted(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	source := &fakeSource{summaries: map[string]*domain.Summary{"Moon": {Title: "Moon", Extract: "Satellite"}}}
	cache := &memoryCache{entries: map[string]domain.CachedSummary{}}
	svc := newService(clk, source, cache)

	first, err := svc.Summary(context.Background(), "moon")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if first == nil || first.PageURL != "https://en.wikipedia.org/wiki/Moon" {
		t.Fatalf("unexpected summary: %+v", first)
	}
	if _, err := svc.Summary(context.Background(), "Moon"); err != nil {
		t.Fatalf("summary again: %v", err)
	}
	if source.fetches != 1 {
		t.Fatalf("expected one upstream fetch, got %d", source.fetches)
	}
	if _, ok := cache.entries["moon"]; !ok {
		t.Fatalf("expected persisted cache entry")
	}
}

func TestExpiredPersistedSummaryIsDeletedAndRefetched(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{now: now}
	source := &fakeSource{summaries: map[string]*domain.Summary{"Moon": {Title: "Moon", Extract: "fresh"}}}
	cache := &memoryCache{entries: map[string]domain.CachedSummary{
		"moon": {Summary: domain.Summary{Title: "Moon", Extract: "stale"}, FetchedAt: now.Add(-25 * time.Hour)},
	}}
	svc := newService(clk, source, cache)

	got, err := svc.Summary(context.Background(), "Moon")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.Extract != "fresh" {
		t.Fatalf("stale entry served: %q", got.Extract)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != "moon" {
		t.Fatalf("expected stale entry deletion, got %v", cache.deleted)
	}
	if !cache.entries["moon"].FetchedAt.Equal(now) {
		t.Fatalf("expected refreshed timestamp")
	}
}

func TestMissingSummaryIsNotCached(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	source := &fakeSource{summaries: map[string]*domain.Summary{}}
	cache := &memoryCache{entries: map[string]domain.CachedSummary{}}
	svc := newService(clk, source, cache)

	got, err := svc.Summary(context.Background(), "Nowhere")
	if err != nil || got != nil {
		t.Fatalf("expected nil summary, got %+v, %v", got, err)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("absence must not be cached")
	}
}

func TestSummaryFetchFailureIsRetryable(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	source := &fakeSource{err: errors.New("connection reset")}
	svc := newService(clk, source, &memoryCache{entries: map[string]domain.CachedSummary{}})

	_, err := svc.Summary(context.Background(), "Moon")
	if !errors.Is(err, apperrors.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestExistsResolvesRedirectsAndRejectsStubs(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Now()}
	source := &fakeSource{summaries: map[string]*domain.Summary{"Moon": {}, "Stub": {}}}
	svc := newService(clk, source, &memoryCache{entries: map[string]domain.CachedSummary{}})
	ctx := context.Background()

	got, err := svc.Exists(ctx, "Luna")
	if err != nil || !got.Exists || got.CanonicalTitle != "Moon" {
		t.Fatalf("redirect: %+v, %v", got, err)
	}
	got, _ = svc.Exists(ctx, "Stub")
	if got.Exists || got.Reason != "article has no links" {
		t.Fatalf("stub: %+v", got)
	}
	got, _ = svc.Exists(ctx, "Nowhere")
	if got.Exists {
		t.Fatalf("missing article reported as existing")
	}
	got, _ = svc.Exists(ctx, "Special:Random")
	if got.Exists {
		t.Fatalf("special page reported as existing")
	}
}

func TestArticleFiltersAndDeduplicatesLinks(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Now()}
	svc := newService(clk, &fakeSource{}, &memoryCache{entries: map[string]domain.CachedSummary{}},
		"/wiki/Earth", "/wiki/File:Moon.jpg", "/wiki/earth#Orbit", "#cite", "/wiki/Sun", "/wiki/Category:Moons")

	article, err := svc.Article(context.Background(), "moon")
	if err != nil {
		t.Fatalf("article: %v", err)
	}
	if article.Title != "Moon" {
		t.Fatalf("unexpected title %q", article.Title)
	}
	want := []string{"Earth", "Sun"}
	if len(article.Links) != len(want) {
		t.Fatalf("links = %v, want %v", article.Links, want)
	}
	for i := range want {
		if article.Links[i] != want[i] {
			t.Fatalf("links = %v, want %v", article.Links, want)
		}
	}
}

func TestArticleRejectsNonArticleTitle(t *testing.T) {
	t.Parallel()
	svc := newService(&fakeClock{now: time.Now()}, &fakeSource{}, &memoryCache{entries: map[string]domain.CachedSummary{}})
	if _, err := svc.Article(context.Background(), "Help:Contents"); !errors.Is(err, apperrors.ErrNotArticle) {
		t.Fatalf("expected ErrNotArticle, got %v", err)
	}
}

func TestRandomTitleFromCategorySkipsNonArticles(t *testing.T) {
	t.Parallel()
	svc := newService(&fakeClock{now: time.Now()}, &fakeSource{}, &memoryCache{entries: map[string]domain.CachedSummary{}})
	title, err := svc.RandomTitle(context.Background(), "Moons")
	if err != nil || title != "Io" {
		t.Fatalf("random from category: %q, %v", title, err)
	}
}
