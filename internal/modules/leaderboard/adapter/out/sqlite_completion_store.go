package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wikigo/internal/modules/leaderboard/domain"
	leaderboardout "wikigo/internal/modules/leaderboard/port/out"
	"wikigo/internal/platform/day"
	"wikigo/internal/platform/sqlitedb"
)

type SQLiteCompletionStore struct {
	db *sql.DB
}

func NewSQLiteCompletionStore(db *sql.DB) (leaderboardout.CompletionStore, error) {
	store := &SQLiteCompletionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteCompletionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS completions (
  username TEXT NOT NULL,
  date TEXT NOT NULL,
  moves INTEGER NOT NULL,
  time_ms INTEGER NOT NULL,
  score INTEGER NOT NULL,
  history TEXT NOT NULL,
  submitted_at TEXT NOT NULL,
  PRIMARY KEY (username, date)
);
CREATE INDEX IF NOT EXISTS completions_date_rank ON completions (date, score DESC, moves, time_ms);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create completions table: %w", err)
	}
	return nil
}

func (s *SQLiteCompletionStore) SubmitCompletion(ctx context.Context, record domain.CompletionRecord) (bool, error) {
	const stmt = `
INSERT INTO completions (username, date, moves, time_ms, score, history, submitted_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(username, date) DO UPDATE SET
  moves=excluded.moves,
  time_ms=excluded.time_ms,
  score=excluded.score,
  history=excluded.history,
  submitted_at=excluded.submitted_at
WHERE excluded.score > completions.score
  OR (excluded.score = completions.score AND excluded.moves < completions.moves)
  OR (excluded.score = completions.score AND excluded.moves = completions.moves AND excluded.time_ms < completions.time_ms);
`
	history, err := encodeTitles(record.History)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, stmt,
		record.Username,
		day.Format(record.Date),
		record.Moves,
		record.TimeMs,
		record.Score,
		history,
		sqlitedb.FormatTime(record.SubmittedAt),
	)
	if err != nil {
		return false, fmt.Errorf("upsert completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert completion: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteCompletionStore) QueryLeaderboard(ctx context.Context, date time.Time, limit, offset int) ([]domain.CompletionRecord, error) {
	const query = `
SELECT username, date, moves, time_ms, score, history, submitted_at
FROM completions
WHERE date = ?
ORDER BY score DESC, moves ASC, time_ms ASC, submitted_at ASC, username ASC
LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, day.Format(date), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var records []domain.CompletionRecord
	for rows.Next() {
		var (
			record      domain.CompletionRecord
			rawDate     string
			history     string
			submittedAt string
		)
		if err := rows.Scan(&record.Username, &rawDate, &record.Moves, &record.TimeMs, &record.Score, &history, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		if record.Date, err = day.Parse(rawDate); err != nil {
			return nil, err
		}
		if record.History, err = decodeTitles(history); err != nil {
			return nil, err
		}
		if record.SubmittedAt, err = sqlitedb.ParseTime(submittedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return records, nil
}

func (s *SQLiteCompletionStore) QueryUserRank(ctx context.Context, username string, date time.Time) (*int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM completions WHERE username = ? AND date = ?`, username, day.Format(date)).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user score: %w", err)
	}
	var higher int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completions WHERE date = ? AND score > ?`, day.Format(date), score).Scan(&higher); err != nil {
		return nil, fmt.Errorf("count higher scores: %w", err)
	}
	rank := higher + 1
	return &rank, nil
}

func (s *SQLiteCompletionStore) CompletionDates(ctx context.Context, username string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM completions WHERE username = ? ORDER BY date DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("query completion dates: %w", err)
	}
	defer rows.Close()
	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan completion date: %w", err)
		}
		d, err := day.Parse(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion dates: %w", err)
	}
	return dates, nil
}

func (s *SQLiteCompletionStore) DailyStats(ctx context.Context, date time.Time) (domain.DailyStats, error) {
	const query = `
SELECT COUNT(*), COALESCE(AVG(moves), 0), COALESCE(AVG(time_ms), 0), COALESCE(AVG(score), 0)
FROM completions WHERE date = ?`
	stats := domain.DailyStats{Date: day.Of(date)}
	err := s.db.QueryRowContext(ctx, query, day.Format(date)).Scan(
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
