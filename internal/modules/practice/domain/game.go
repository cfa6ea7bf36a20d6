package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "wikigo/internal/platform/errors"
)

// Game is a fixed start/goal pair that can be replayed without touching
// the leaderboard.
type Game struct {
	ID              string
	StartTitle      string
	GoalTitle       string
	SolutionHistory []string
	CreatedAt       time.Time
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: practice game id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(g.StartTitle) == "" || strings.TrimSpace(g.GoalTitle) == "" {
		return fmt.Errorf("%w: start and goal are required", apperrors.ErrInvalidInput)
	}
	if strings.EqualFold(g.StartTitle, g.GoalTitle) {
		return fmt.Errorf("%w: start and goal must differ", apperrors.ErrInvalidInput)
	}
	return nil
}

// NormalizeSolution makes a solution path start at start, end at goal and
// visit every title once. An empty path becomes [start, goal].
func NormalizeSolution(start, goal string, path []string) []string {
	out := []string{start}
	seen := map[string]struct{}{strings.ToLower(start): {}}
	for _, title := range path {
		title = strings.TrimSpace(title)
		key := strings.ToLower(title)
		if title == "" || strings.EqualFold(title, goal) {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, title)
	}
	return append(out, goal)
}

type Status string

const (
	StatusAvailable      Status = "available"
	StatusSolutionViewed Status = "solution_viewed"
	StatusCompleted      Status = "completed"
)

// Merge returns the status after next is recorded on top of current.
// Completion is never downgraded.
func Merge(current, next Status) Status {
	if current == StatusCompleted || next == StatusCompleted {
		return StatusCompleted
	}
	if current == StatusSolutionViewed || next == StatusSolutionViewed {
		return StatusSolutionViewed
	}
	return StatusAvailable
}
