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
	apperrors "wikigo/internal/platform/errors"
)

type SQLiteDailyStore struct {
	db *sql.DB
}

func NewSQLiteDailyStore(db *sql.DB) (leaderboardout.DailyChallengeStore, error) {
	store := &SQLiteDailyStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteDailyStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS daily_challenges (
  date TEXT PRIMARY KEY,
  start_title TEXT NOT NULL,
  goal_title TEXT NOT NULL,
  hint TEXT NOT NULL DEFAULT '',
  best_solution TEXT NOT NULL DEFAULT '[]'
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create daily_challenges table: %w", err)
	}
	return nil
}

func (s *SQLiteDailyStore) GetDaily(ctx context.Context, date time.Time) (domain.DailyChallenge, error) {
	const query = `SELECT date, start_title, goal_title, hint, best_solution FROM daily_challenges WHERE date = ?`
	challenge, err := scanDaily(s.db.QueryRowContext(ctx, query, day.Format(date)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DailyChallenge{}, fmt.Errorf("%w: no daily challenge for %s", apperrors.ErrNotFound, day.Format(date))
	}
	return challenge, err
}

func (s *SQLiteDailyStore) PutDaily(ctx context.Context, challenge domain.DailyChallenge) error {
	const stmt = `
INSERT INTO daily_challenges (date, start_title, goal_title, hint, best_solution)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  start_title=excluded.start_title,
  goal_title=excluded.goal_title,
  hint=excluded.hint,
  best_solution=excluded.best_solution;
`
	best, err := encodeTitles(challenge.BestSolution)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, stmt, day.Format(challenge.Date), challenge.StartTitle, challenge.GoalTitle, challenge.Hint, best); err != nil {
		return fmt.Errorf("upsert daily challenge: %w", err)
	}
	return nil
}

func (s *SQLiteDailyStore) ListDaily(ctx context.Context, from, to time.Time) ([]domain.DailyChallenge, error) {
	const query = `
SELECT date, start_title, goal_title, hint, best_solution FROM daily_challenges
WHERE date >= ? AND date <= ? ORDER BY date ASC`
	rows, err := s.db.QueryContext(ctx, query, day.Format(from), day.Format(to))
	if err != nil {
		return nil, fmt.Errorf("list daily challenges: %w", err)
	}
	defer rows.Close()
	var out []domain.DailyChallenge
	for rows.Next() {
		challenge, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, challenge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily challenges: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDaily(row rowScanner) (domain.DailyChallenge, error) {
	var (
		challenge domain.DailyChallenge
		date      string
		best      string
	)
	if err := row.Scan(&date, &challenge.StartTitle, &challenge.GoalTitle, &challenge.Hint, &best); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DailyChallenge{}, err
		}
		return domain.DailyChallenge{}, fmt.Errorf("scan daily challenge: %w", err)
	}
	var err error
	if challenge.Date, err = day.Parse(date); err != nil {
		return domain.DailyChallenge{}, err
	}
	if challenge.BestSolution, err = decodeTitles(best); err != nil {
		return domain.DailyChallenge{}, err
	}
	return challenge, nil
}
