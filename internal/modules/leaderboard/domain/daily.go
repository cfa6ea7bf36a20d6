package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "wikigo/internal/platform/errors"
)

// DailyChallenge is the start/goal pair everyone plays on one UTC date.
type DailyChallenge struct {
	Date         time.Time
	StartTitle   string
	GoalTitle    string
	Hint         string
	BestSolution []string
}

func (d DailyChallenge) Validate() error {
	if d.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.StartTitle) == "" || strings.TrimSpace(d.GoalTitle) == "" {
		return fmt.Errorf("%w: start and goal are required", apperrors.ErrInvalidInput)
	}
	if strings.EqualFold(strings.TrimSpace(d.StartTitle), strings.TrimSpace(d.GoalTitle)) {
		return fmt.Errorf("%w: start and goal must differ", apperrors.ErrInvalidInput)
	}
	return nil
}

type DailyStats struct {
	Date            time.Time
	CompletionCount int
	AverageMoves    float64
	AverageTimeMs   float64
	AverageScore    float64
	Best            *CompletionRecord
}

type UserStats struct {
	Username         string
	Streak           int
	TotalCompletions int
	GlobalRank       *int
}
