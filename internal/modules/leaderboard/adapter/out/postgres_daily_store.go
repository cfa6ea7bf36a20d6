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
	apperrors "wikigo/internal/platform/errors"
)

type PostgresDailyStore struct {
	db *pgxpool.Pool
}

func NewPostgresDailyStore(ctx context.Context, db *pgxpool.Pool) (leaderboardout.DailyChallengeStore, error) {
	store := &PostgresDailyStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS daily_challenges (
  date DATE PRIMARY KEY,
  start_title TEXT NOT NULL,
  goal_title TEXT NOT NULL,
  hint TEXT NOT NULL DEFAULT '',
  best_solution TEXT NOT NULL DEFAULT '[]'
)`
	if _, err := db.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create daily_challenges table: %w", err)
	}
	return store, nil
}

func (s *PostgresDailyStore) GetDaily(ctx context.Context, date time.Time) (domain.DailyChallenge, error) {
	const query = `SELECT date, start_title, goal_title, hint, best_solution FROM daily_challenges WHERE date = $1`
	challenge, err := scanPostgresDaily(s.db.QueryRow(ctx, query, day.Of(date)))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DailyChallenge{}, fmt.Errorf("%w: no daily challenge for %s", apperrors.ErrNotFound, day.Format(date))
	}
	return challenge, err
}

func (s *PostgresDailyStore) PutDaily(ctx context.Context, challenge domain.DailyChallenge) error {
	const stmt = `
INSERT INTO daily_challenges (date, start_title, goal_title, hint, best_solution)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (date) DO UPDATE SET
  start_title = EXCLUDED.start_title,
  goal_title = EXCLUDED.goal_title,
  hint = EXCLUDED.hint,
  best_solution = EXCLUDED.best_solution`
	best, err := encodeTitles(challenge.BestSolution)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, stmt, day.Of(challenge.Date), challenge.StartTitle, challenge.GoalTitle, challenge.Hint, best); err != nil {
		return fmt.Errorf("upsert daily challenge: %w", err)
	}
	return nil
}

func (s *PostgresDailyStore) ListDaily(ctx context.Context, from, to time.Time) ([]domain.DailyChallenge, error) {
	const query = `
SELECT date, start_title, goal_title, hint, best_solution FROM daily_challenges
WHERE date BETWEEN $1 AND $2 ORDER BY date ASC`
	rows, err := s.db.Query(ctx, query, day.Of(from), day.Of(to))
	if err != nil {
		return nil, fmt.Errorf("list daily challenges: %w", err)
	}
	defer rows.Close()
	var out []domain.DailyChallenge
	for rows.Next() {
		challenge, err := scanPostgresDaily(rows)
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

func scanPostgresDaily(row pgx.Row) (domain.DailyChallenge, error) {
	var (
		challenge domain.DailyChallenge
		best      string
	)
	if err := row.Scan(&challenge.Date, &challenge.StartTitle, &challenge.GoalTitle, &challenge.Hint, &best); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DailyChallenge{}, err
		}
		return domain.DailyChallenge{}, fmt.Errorf("scan daily challenge: %w", err)
	}
	challenge.Date = day.Of(challenge.Date)
	var err error
	if challenge.BestSolution, err = decodeTitles(best); err != nil {
		return domain.DailyChallenge{}, err
	}
	return challenge, nil
}
