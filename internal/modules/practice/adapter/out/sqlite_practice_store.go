package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wikigo/internal/modules/practice/domain"
	practiceout "wikigo/internal/modules/practice/port/out"
	apperrors "wikigo/internal/platform/errors"
	"wikigo/internal/platform/sqlitedb"
)

type SQLitePracticeStore struct {
	db *sql.DB
}

func NewSQLitePracticeStore(db *sql.DB) (practiceout.PracticeStore, error) {
	store := &SQLitePracticeStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLitePracticeStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS practice_games (
  id TEXT PRIMARY KEY,
  start_title TEXT NOT NULL,
  goal_title TEXT NOT NULL,
  solution_history TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS practice_status (
  username TEXT NOT NULL,
  game_id TEXT NOT NULL,
  status TEXT NOT NULL,
  PRIMARY KEY (username, game_id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create practice tables: %w", err)
	}
	return nil
}

func (s *SQLitePracticeStore) ListGames(ctx context.Context, limit int) ([]domain.Game, error) {
	const query = `
SELECT id, start_title, goal_title, solution_history, created_at
FROM practice_games ORDER BY created_at DESC, id ASC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list practice games: %w", err)
	}
	defer rows.Close()
	var games []domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
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

func (s *SQLitePracticeStore) GetGame(ctx context.Context, id string) (domain.Game, error) {
	const query = `SELECT id, start_title, goal_title, solution_history, created_at FROM practice_games WHERE id = ?`
	game, err := scanGame(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Game{}, fmt.Errorf("%w: practice game %s", apperrors.ErrNotFound, id)
	}
	return game, err
}

func (s *SQLitePracticeStore) PutGame(ctx context.Context, game domain.Game) error {
	const stmt = `
INSERT INTO practice_games (id, start_title, goal_title, solution_history, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  start_title=excluded.start_title,
  goal_title=excluded.goal_title,
  solution_history=excluded.solution_history;
`
	solution, err := encodeTitles(game.SolutionHistory)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, stmt, game.ID, game.StartTitle, game.GoalTitle, solution, sqlitedb.FormatTime(game.CreatedAt)); err != nil {
		return fmt.Errorf("upsert practice game: %w", err)
	}
	return nil
}

func (s *SQLitePracticeStore) Status(ctx context.Context, username, gameID string) (domain.Status, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM practice_status WHERE username = ? AND game_id = ?`, username, gameID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StatusAvailable, nil
	}
	if err != nil {
		return "", fmt.Errorf("read practice status: %w", err)
	}
	return domain.Status(status), nil
}

func (s *SQLitePracticeStore) Statuses(ctx context.Context, username string) (map[string]domain.Status, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT game_id, status FROM practice_status WHERE username = ?`, username)
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

func (s *SQLitePracticeStore) MarkCompleted(ctx context.Context, username, gameID string) error {
	return s.setStatus(ctx, username, gameID, domain.StatusCompleted)
}

func (s *SQLitePracticeStore) MarkSolutionViewed(ctx context.Context, username, gameID string) error {
	return s.setStatus(ctx, username, gameID, domain.StatusSolutionViewed)
}

// setStatus never overwrites a completed row.
func (s *SQLitePracticeStore) setStatus(ctx context.Context, username, gameID string, status domain.Status) error {
	const stmt = `
INSERT INTO practice_status (username, game_id, status) VALUES (?, ?, ?)
ON CONFLICT(username, game_id) DO UPDATE SET status=excluded.status
WHERE practice_status.status <> 'completed';
`
	if _, err := s.db.ExecContext(ctx, stmt, username, gameID, string(status)); err != nil {
		return fmt.Errorf("update practice status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (domain.Game, error) {
	var (
		game      domain.Game
		solution  string
		createdAt string
	)
	if err := row.Scan(&game.ID, &game.StartTitle, &game.GoalTitle, &solution, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Game{}, err
		}
		return domain.Game{}, fmt.Errorf("scan practice game: %w", err)
	}
	var err error
	if game.SolutionHistory, err = decodeTitles(solution); err != nil {
		return domain.Game{}, err
	}
	if game.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
		return domain.Game{}, err
	}
	return game, nil
}
