package service

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"wikigo/internal/modules/game/domain"
	gameout "wikigo/internal/modules/game/port/out"
	"wikigo/internal/platform/clock"
	"wikigo/internal/platform/id"
)

type GameService struct {
	clock   clock.Clock
	idGen   id.Generator
	journal gameout.RunJournal
	log     hclog.Logger
}

func NewGameService(clock clock.Clock, idGen id.Generator, journal gameout.RunJournal, log hclog.Logger) *GameService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &GameService{clock: clock, idGen: idGen, journal: journal, log: log.Named("game")}
}

func (s *GameService) Now() time.Time {
	return s.clock.Now()
}

func (s *GameService) NewSession(generation uint64, mode domain.Mode) domain.Session {
	return domain.NewSession(s.idGen.New(), generation, mode)
}

// Begin starts the timer now.
func (s *GameService) Begin(session domain.Session, start, goal string) (domain.Session, error) {
	next, err := domain.Reduce(session, domain.Started{Start: start, Goal: goal, At: s.clock.Now()})
	if err != nil {
		return session, err
	}
	s.log.Debug("session started", "id", next.ID, "mode", next.Mode, "start", start, "goal", goal)
	return next, nil
}

// Move records a navigation that happened at clickedAt. A winning move is
// timed at the click, not when the move is applied.
func (s *GameService) Move(session domain.Session, title string, clickedAt time.Time) (domain.Session, error) {
	next, err := domain.Reduce(session, domain.Navigated{Title: title, At: clickedAt})
	if err != nil {
		return session, err
	}
	if next.Status == domain.StatusWon {
		s.log.Info("session won", "id", next.ID, "moves", next.MoveCount(), "elapsed_ms", next.FrozenElapsedMs, "score", next.FinalScore)
	}
	return next, nil
}

func (s *GameService) Record(ctx context.Context, run domain.RunRecord) (string, error) {
	if s.journal == nil {
		return "", nil
	}
	return s.journal.Save(ctx, run)
}

func (s *GameService) Runs(ctx context.Context, limit int) ([]domain.RunRecord, []string, error) {
	if s.journal == nil {
		return nil, nil, nil
	}
	return s.journal.List(ctx, limit)
}
