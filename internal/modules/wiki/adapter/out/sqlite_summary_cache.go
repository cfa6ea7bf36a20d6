package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wikigo/internal/modules/wiki/domain"
	wikiout "wikigo/internal/modules/wiki/port/out"
	"wikigo/internal/platform/sqlitedb"
)

type SQLiteSummaryCache struct {
	db *sql.DB
}

func NewSQLiteSummaryCache(db *sql.DB) (wikiout.SummaryCache, error) {
	cache := &SQLiteSummaryCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (s *SQLiteSummaryCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS summary_cache (
  cache_key TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  extract TEXT NOT NULL,
  thumbnail_url TEXT NOT NULL,
  page_url TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create summary_cache table: %w", err)
	}
	return nil
}

func (s *SQLiteSummaryCache) Get(ctx context.Context, key string) (domain.CachedSummary, bool, error) {
	const query = `
SELECT title, description, extract, thumbnail_url, page_url, fetched_at
FROM summary_cache WHERE cache_key = ?`
	var (
		entry     domain.CachedSummary
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&entry.Summary.Title,
		&entry.Summary.Description,
		&entry.Summary.Extract,
		&entry.Summary.ThumbnailURL,
		&entry.Summary.PageURL,
		&fetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CachedSummary{}, false, nil
	}
	if err != nil {
		return domain.CachedSummary{}, false, fmt.Errorf("read summary cache: %w", err)
	}
	entry.FetchedAt, err = sqlitedb.ParseTime(fetchedAt)
	if err != nil {
		return domain.CachedSummary{}, false, err
	}
	return entry, true, nil
}

func (s *SQLiteSummaryCache) Put(ctx context.Context, key string, entry domain.CachedSummary) error {
	const stmt = `
INSERT INTO summary_cache (cache_key, title, description, extract, thumbnail_url, page_url, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(cache_key) DO UPDATE SET
  title=excluded.title,
  description=excluded.description,
  extract=excluded.extract,
  thumbnail_url=excluded.thumbnail_url,
  page_url=excluded.page_url,
  fetched_at=excluded.fetched_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		key,
		entry.Summary.Title,
		entry.Summary.Description,
		entry.Summary.Extract,
		entry.Summary.ThumbnailURL,
		entry.Summary.PageURL,
		sqlitedb.FormatTime(entry.FetchedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert summary cache: %w", err)
	}
	return nil
}

func (s *SQLiteSummaryCache) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM summary_cache WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("delete summary cache: %w", err)
	}
	return nil
}
