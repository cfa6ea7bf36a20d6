package out

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wikigo/internal/modules/leaderboard/domain"
	leaderboardout "wikigo/internal/modules/leaderboard/port/out"
	"wikigo/internal/platform/day"
)

// PostgresCompletionStore keeps completions in the hosted database. It
// applies the same best-result rule as the SQLite store.
type PostgresCompletionStore struct {
	db *pgxpool.Pool
}

func NewPostgresCompletionStore(ctx context.Context, db *pgxpool.Pool) (leaderboardout.CompletionStore, error) {
	store := &PostgresCompletionStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PostgresCompletionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS completions (
  username TEXT NOT NULL,
  date DATE NOT NULL,
  moves INTEGER NOT NULL,
  time_ms INTEGER NOT NULL,
  score INTEGER NOT NULL,
  history TEXT NOT NULL,
  submitted_at TIMESTAMPTZ NOT NULL,
  PRIMARY KEY (username, date)
);
CREATE INDEX IF NOT EXISTS completions_date_rank ON completions (date, score DESC, moves, time_ms);
`
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create completions table: %w", err)
	}
	return nil
}

func (s *PostgresCompletionStore) SubmitCompletion(ctx context.Context, record domain.CompletionRecord) (bool, error) {
	const stmt = `
INSERT INTO completions (username, date, moves, time_ms, score, history, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (username, date) DO UPDATE SET
  moves = EXCLUDED.moves,
  time_ms = EXCLUDED.time_ms,
  score = EXCLUDED.score,
  history = EXCLUDED.history,
  submitted_at = EXCLUDED.submitted_at
WHERE EXCLUDED.score > completions.score
  OR (EXCLUDED.score = completions.score AND EXCLUDED.moves < completions.moves)
  OR (EXCLUDED.score = completions.score AND EXCLUDED.moves = completions.moves AND EXCLUDED.time_ms < completions.time_ms)`
	history, err := encodeTitles(record.History)
	if err != nil {
		return false, err
	}
	tag, err := s.db.Exec(ctx, stmt,
		record.Username,
		day.Of(record.Date),
		record.Moves,
		record.TimeMs,
		record.Score,
		history,
		record.SubmittedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("upsert completion: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresCompletionStore) QueryLeaderboard(ctx context.Context, date time.Time, limit, offset int) ([]domain.CompletionRecord, error) {
	const query = `
SELECT username, date, moves, time_ms, score, history, submitted_at
FROM completions
WHERE date = $1
ORDER BY score DESC, moves ASC, time_ms ASC, submitted_at ASC, username ASC
LIMIT $2 OFFSET $3`
	rows, err := s.db.Query(ctx, query, day.Of(date), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var records []domain.CompletionRecord
	for rows.Next() {
		var (
			record  domain.CompletionRecord
			history string
		)
		if err := rows.Scan(&record.Username, &record.Date, &record.Moves, &record.TimeMs, &record.Score, &history, &record.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		record.Date = day.Of(record.Date)
		record.SubmittedAt = record.SubmittedAt.UTC()
		if record.History, err = decodeTitles(history); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return records, nil
}

func (s *PostgresCompletionStore) QueryUserRank(ctx context.Context, username string, date time.Time) (*int, error) {
	const query = `
SELECT 1 + (SELECT COUNT(*) FROM completions other WHERE other.date = mine.date AND other.score > mine.score)
FROM completions mine
WHERE mine.username = $1 AND mine.date = $2`
	var rank int
	err := s.db.QueryRow(ctx, query, username, day.Of(date)).Scan(&rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user rank: %w", err)
	}
	return &rank, nil
}

func (s *PostgresCompletionStore) CompletionDates(ctx context.Context, username string) ([]time.Time, error) {
	rows, err := s.db.Query(ctx, `SELECT date FROM completions WHERE username = $1 ORDER BY date DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("query completion dates: %w", err)
	}
	defer rows.Close()
	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan completion date: %w", err)
		}
		dates = append(dates, day.Of(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion dates: %w", err)
	}
	return dates, nil
}

func (s *PostgresCompletionStore) DailyStats(ctx context.Context, date time.Time) (domain.DailyStats, error) {
	const query = `
SELECT COUNT(*), COALESCE(AVG(moves), 0)::float8, COALESCE(AVG(time_ms), 0)::float8, COALESCE(AVG(score), 0)::float8
FROM completions WHERE date = $1`
	stats := domain.DailyStats{Date: day.Of(date)}
	err := s.db.QueryRow(ctx, query, day.Of(date)).Scan(
		&stats.CompletionCount,
		&stats.AverageMoves,
		&stats.AverageTimeMs,
		&stats.AverageScore,
	)
	if err != nil {
		return domain.DailyStats{}, fmt.Errorf("query daily stats: %w", err)
	}
	return stats, nil
}
