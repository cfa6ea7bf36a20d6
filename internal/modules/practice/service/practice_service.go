package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"wikigo/internal/modules/practice/domain"
	practiceout "wikigo/internal/modules/practice/port/out"
	"wikigo/internal/platform/clock"
	apperrors "wikigo/internal/platform/errors"
	"wikigo/internal/platform/id"
)

const DefaultListLimit = 50

type PracticeService struct {
	clock clock.Clock
	ids   id.Generator
	store practiceout.PracticeStore
	seeds practiceout.SeedSource
	log   hclog.Logger
}

func NewPracticeService(clk clock.Clock, ids id.Generator, store practiceout.PracticeStore, seeds practiceout.SeedSource, log hclog.Logger) *PracticeService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &PracticeService{clock: clk, ids: ids, store: store, seeds: seeds, log: log.Named("practice")}
}

type GameWithStatus struct {
	Game   domain.Game
	Status domain.Status
}

func (s *PracticeService) List(ctx context.Context, username string, limit int) ([]GameWithStatus, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	games, err := s.store.ListGames(ctx, limit)
	if err != nil {
		return nil, err
	}
	statuses := map[string]domain.Status{}
	if username != "" {
		if statuses, err = s.store.Statuses(ctx, username); err != nil {
			return nil, err
		}
	}
	out := make([]GameWithStatus, 0, len(games))
	for _, game := range games {
		out = append(out, GameWithStatus{Game: game, Status: domain.Merge(statuses[game.ID], domain.StatusAvailable)})
	}
	return out, nil
}

func (s *PracticeService) Get(ctx context.Context, username, gameID string) (GameWithStatus, error) {
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return GameWithStatus{}, err
	}
	status := domain.StatusAvailable
	if username != "" {
		stored, err := s.store.Status(ctx, username, gameID)
		if err != nil {
			return GameWithStatus{}, err
		}
		status = domain.Merge(stored, status)
	}
	return GameWithStatus{Game: game, Status: status}, nil
}

// Add stores a new game with a normalized solution path.
func (s *PracticeService) Add(ctx context.Context, game domain.Game) (domain.Game, error) {
	game.StartTitle = strings.TrimSpace(game.StartTitle)
	game.GoalTitle = strings.TrimSpace(game.GoalTitle)
	if game.ID == "" {
		game.ID = s.ids.New()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = s.clock.Now()
	}
	if err := game.Validate(); err != nil {
		return domain.Game{}, err
	}
	game.SolutionHistory = domain.NormalizeSolution(game.StartTitle, game.GoalTitle, game.SolutionHistory)
	if err := s.store.PutGame(ctx, game); err != nil {
		return domain.Game{}, err
	}
	s.log.Debug("practice game stored", "id", game.ID, "start", game.StartTitle, "goal", game.GoalTitle)
	return game, nil
}

// Seed loads every game in path. Games are upserted by ID, so seeding the
// same file twice is harmless.
func (s *PracticeService) Seed(ctx context.Context, path string) (int, error) {
	if s.seeds == nil {
		return 0, fmt.Errorf("%w: no seed source configured", apperrors.ErrInvalidInput)
	}
	games, err := s.seeds.Load(ctx, path)
	if err != nil {
		return 0, err
	}
	for idx, game := range games {
		if _, err := s.Add(ctx, game); err != nil {
			return idx, fmt.Errorf("seed game %d: %w", idx+1, err)
		}
	}
	s.log.Info("practice games seeded", "path", path, "count", len(games))
	return len(games), nil
}

func (s *PracticeService) MarkCompleted(ctx context.Context, username, gameID string) error {
	if err := requireUser(username); err != nil {
		return err
	}
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return err
	}
	return s.store.MarkCompleted(ctx, username, gameID)
}

// ViewSolution reveals the solution and records that it was seen, unless
// the game is already completed.
func (s *PracticeService) ViewSolution(ctx context.Context, username, gameID string) (GameWithStatus, error) {
	if err := requireUser(username); err != nil {
		return GameWithStatus{}, err
	}
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return GameWithStatus{}, err
	}
	if err := s.store.MarkSolutionViewed(ctx, username, gameID); err != nil {
		return GameWithStatus{}, err
	}
	return s.Get(ctx, username, gameID)
}

func requireUser(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", apperrors.ErrInvalidInput)
	}
	return nil
}
