package out

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wikigo/internal/modules/practice/domain"
	practiceout "wikigo/internal/modules/practice/port/out"
	apperrors "wikigo/internal/platform/errors"
)

type PostgresPracticeStore struct {
	db *pgxpool.Pool
}

func NewPostgresPracticeStore(ctx context.Context, db *pgxpool.Pool) (practiceout.PracticeStore, error) {
	const ddl = `
CREATE TABLE IF NOT EXISTS practice_games (
  id TEXT PRIMARY KEY,
  start_title TEXT NOT NULL,
  goal_title TEXT NOT NULL,
  solution_history TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS practice_status (
  username TEXT NOT NULL,
  game_id TEXT NOT NULL REFERENCES practice_games(id) ON DELETE CASCADE,
  status TEXT NOT NULL,
  PRIMARY KEY (username, game_id)
);
`
	if _, err := db.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create practice tables: %w", err)
	}
	return &PostgresPracticeStore{db: db}, nil
}

func (s *PostgresPracticeStore) ListGames(ctx context.Context, limit int) ([]domain.Game, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, start_title, goal_title, solution_history, created_at
FROM practice_games ORDER BY created_at DESC, id ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list practice games: %w", err)
	}
	defer rows.Close()
	var games []domain.Game
	for rows.Next() {
		game, err := scanPostgresGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice games: %w", err)
	}
	return games, nil
}

func (s *PostgresPracticeStore) GetGame(ctx context.Context, id string) (domain.Game, error) {
	game, err := scanPostgresGame(s.db.QueryRow(ctx, `
SELECT id, start_title, goal_title, solution_history, created_at FROM practice_games WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Game{}, fmt.Errorf("%w: practice game %s", apperrors.ErrNotFound, id)
	}
	return game, err
}

func (s *PostgresPracticeStore) PutGame(ctx context.Context, game domain.Game) error {
	solution, err := encodeTitles(game.SolutionHistory)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
INSERT INTO practice_games (id, start_title, goal_title, solution_history, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  start_title = EXCLUDED.start_title,
  goal_title = EXCLUDED.goal_title,
  solution_history = EXCLUDED.solution_history`,
		game.ID, game.StartTitle, game.GoalTitle, solution, game.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert practice game: %w", err)
	}
	return nil
}

func (s *PostgresPracticeStore) Status(ctx context.Context, username, gameID string) (domain.Status, error) {
	var status string
	err := s.db.QueryRow(ctx, `SELECT status FROM practice_status WHERE username = $1 AND game_id = $2`, username, gameID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StatusAvailable, nil
	}
	if err != nil {
		return "", fmt.Errorf("read practice status: %w", err)
	}
	return domain.Status(status), nil
}

func (s *PostgresPracticeStore) Statuses(ctx context.Context, username string) (map[string]domain.Status, error) {
	rows, err := s.db.Query(ctx, `SELECT game_id, status FROM practice_status WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("list practice status: %w", err)
	}
	defer rows.Close()
	out := map[string]domain.Status{}
	for rows.Next() {
		var gameID, status string
		if err := rows.Scan(&gameID, &status); err != nil {
			return nil, fmt.Errorf("scan practice status: %w", err)
		}
		out[gameID] = domain.Status(status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice status: %w", err)
	}
	return out, nil
}

func (s *PostgresPracticeStore) MarkCompleted(ctx context.Context, username, gameID string) error {
	return s.setStatus(ctx, username, gameID, domain.StatusCompleted)
}

func (s *PostgresPracticeStore) MarkSolutionViewed(ctx context.Context, username, gameID string) error {
	return s.setStatus(ctx, username, gameID, domain.StatusSolutionViewed)
}

func (s *PostgresPracticeStore) setStatus(ctx context.Context, username, gameID string, status domain.Status) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO practice_status (username, game_id, status) VALUES ($1, $2, $3)
ON CONFLICT (username, game_id) DO UPDATE SET status = EXCLUDED.status
WHERE practice_status.status <> 'completed'`, username, gameID, string(status))
	if err != nil {
		return fmt.Errorf("update practice status: %w", err)
	}
	return nil
}

func scanPostgresGame(row pgx.Row) (domain.Game, error) {
	var (
		game     domain.Game
		solution string
	)
	if err := row.Scan(&game.ID, &game.StartTitle, &game.GoalTitle, &solution, &game.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Game{}, err
		}
		return domain.Game{}, fmt.Errorf("scan practice game: %w", err)
	}
	game.CreatedAt = game.CreatedAt.UTC()
	var err error
	if game.SolutionHistory, err = decodeTitles(solution); err != nil {
		return domain.Game{}, err
	}
	return game, nil
}
