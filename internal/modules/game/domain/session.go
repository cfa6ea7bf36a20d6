package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "wikigo/internal/platform/errors"
)

const SchemaVersion = 1

type Status string

const (
	StatusSetup  Status = "setup"
	StatusActive Status = "active"
	StatusWon    Status = "won"
)

type Mode string

const (
	ModeDaily     Mode = "daily"
	ModeZen       Mode = "zen"
	ModeRandom    Mode = "random"
	ModeChallenge Mode = "challenge"
)

func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeDaily, ModeZen, ModeRandom, ModeChallenge:
		return m, nil
	case "":
		return ModeRandom, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", apperrors.ErrInvalidInput, raw)
	}
}

// Session is one attempt to reach GoalTitle from StartTitle. Values are
// immutable from the caller's point of view: Reduce returns a new Session.
type Session struct {
	ID              string
	Generation      uint64
	Mode            Mode
	Status          Status
	StartTitle      string
	GoalTitle       string
	History         []string
	StartedAt       time.Time
	WonAt           time.Time
	FrozenElapsedMs int
	FinalScore      int
	Challenge       *ChallengeDescriptor
	PracticeGameID  string
	DailyDate       time.Time
}

// NewSession returns a session in setup for the given run parameters.
func NewSession(id string, generation uint64, mode Mode) Session {
	return Session{ID: id, Generation: generation, Mode: mode, Status: StatusSetup}
}

func (s Session) MoveCount() int {
	if len(s.History) == 0 {
		return 0
	}
	return len(s.History) - 1
}

func (s Session) Current() string {
	if len(s.History) == 0 {
		return ""
	}
	return s.History[len(s.History)-1]
}

// ElapsedMs is live while active, frozen once won and zero during setup.
func (s Session) ElapsedMs(now time.Time) int {
	switch s.Status {
	case StatusActive:
		return clampMs(now.Sub(s.StartedAt))
	case StatusWon:
		return s.FrozenElapsedMs
	default:
		return 0
	}
}

func (s Session) Elapsed(now time.Time) time.Duration {
	return time.Duration(s.ElapsedMs(now)) * time.Millisecond
}

type Event interface {
	isEvent()
}

type Started struct {
	Start string
	Goal  string
	At    time.Time
}

type Navigated struct {
	Title string
	At    time.Time
}

func (Started) isEvent()   {}
func (Navigated) isEvent() {}

// Reduce applies event to state. On error state is returned unchanged.
func Reduce(state Session, event Event) (Session, error) {
	next := state
	next.History = slices.Clone(state.History)

	switch ev := event.(type) {
	case Started:
		if state.Status != StatusSetup {
			return state, fmt.Errorf("%w: start from %s", apperrors.ErrInvalidTransition, state.Status)
		}
		if strings.TrimSpace(ev.Start) == "" || strings.TrimSpace(ev.Goal) == "" {
			return state, fmt.Errorf("%w: start and goal are required", apperrors.ErrInvalidInput)
		}
		next.Status = StatusActive
		next.StartTitle = ev.Start
		next.GoalTitle = ev.Goal
		next.History = []string{ev.Start}
		next.StartedAt = ev.At
	case Navigated:
		if state.Status != StatusActive {
			return state, fmt.Errorf("%w: navigate from %s", apperrors.ErrInvalidTransition, state.Status)
		}
		if strings.TrimSpace(ev.Title) == "" {
			return state, fmt.Errorf("%w: empty title", apperrors.ErrNotArticle)
		}
		next.History = append(next.History, ev.Title)
		if strings.EqualFold(ev.Title, state.GoalTitle) {
			next.Status = StatusWon
			next.WonAt = ev.At
			next.FrozenElapsedMs = clampMs(ev.At.Sub(state.StartedAt))
			next.FinalScore = Score(next.MoveCount(), next.FrozenElapsedMs)
		}
	default:
		return state, fmt.Errorf("%w: unknown event %T", apperrors.ErrInvalidTransition, event)
	}

	if err := next.CheckInvariants(); err != nil {
		return state, err
	}
	return next, nil
}

// CheckInvariants reports structural violations. Sessions in setup have no
// history yet and always pass.
func (s Session) CheckInvariants() error {
	if s.Status == StatusSetup {
		return nil
	}
	if len(s.History) == 0 {
		return fmt.Errorf("%w: empty history", apperrors.ErrInvariant)
	}
	if s.History[0] != s.StartTitle {
		return fmt.Errorf("%w: history starts at %q, not %q", apperrors.ErrInvariant, s.History[0], s.StartTitle)
	}
	if s.Status == StatusWon && !strings.EqualFold(s.Current(), s.GoalTitle) {
		return fmt.Errorf("%w: won at %q, goal is %q", apperrors.ErrInvariant, s.Current(), s.GoalTitle)
	}
	if s.Status == StatusWon && s.FinalScore != Score(s.MoveCount(), s.FrozenElapsedMs) {
		return fmt.Errorf("%w: score does not match moves and time", apperrors.ErrInvariant)
	}
	return nil
}

func clampMs(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d.Milliseconds())
}
