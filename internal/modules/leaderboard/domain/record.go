package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "wikigo/internal/platform/errors"
)

const MaxUsernameLength = 40

// CompletionRecord is one player's authoritative result for one daily
// challenge date.
type CompletionRecord struct {
	Username    string
	Date        time.Time
	Moves       int
	TimeMs      int
	Score       int
	History     []string
	SubmittedAt time.Time
}

func (r CompletionRecord) Validate() error {
	name := strings.TrimSpace(r.Username)
	switch {
	case name == "":
		return fmt.Errorf("%w: username is required", apperrors.ErrInvalidInput)
	case len(name) > MaxUsernameLength:
		return fmt.Errorf("%w: username longer than %d characters", apperrors.ErrInvalidInput, MaxUsernameLength)
	case r.Date.IsZero():
		return fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	case r.Moves < 0 || r.TimeMs < 0 || r.Score < 0:
		return fmt.Errorf("%w: moves, time and score must be non-negative", apperrors.ErrInvalidInput)
	case len(r.History) > 0 && len(r.History) != r.Moves+1:
		return fmt.Errorf("%w: history has %d entries for %d moves", apperrors.ErrInvalidInput, len(r.History), r.Moves)
	}
	return nil
}

// Less orders records the way the leaderboard lists them: score DESC,
// moves ASC, time ASC, earlier submission first, then username.
func Less(a, b CompletionRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Moves != b.Moves {
		return a.Moves < b.Moves
	}
	if a.TimeMs != b.TimeMs {
		return a.TimeMs < b.TimeMs
	}
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	return a.Username < b.Username
}

// Improves reports whether candidate should replace current as the stored
// result for the same (username, date). Submission time is ignored so a
// resubmission of an equal run is a no-op.
func Improves(candidate, current CompletionRecord) bool {
	if candidate.Score != current.Score {
		return candidate.Score > current.Score
	}
	if candidate.Moves != current.Moves {
		return candidate.Moves < current.Moves
	}
	return candidate.TimeMs < current.TimeMs
}

// CompetitionRank is 1 plus the number of scores strictly above score.
func CompetitionRank(score int, scores []int) int {
	rank := 1
	for _, s := range scores {
		if s > score {
			rank++
		}
	}
	return rank
}
