package domain

const (
	BaseScore        = 1000
	MovePenalty      = 10
	PenaltyPerSecond = 1
)

// Score is the single source of truth for a run's points. Elapsed time is
// truncated to whole seconds before the penalty applies.
func Score(moves, elapsedMs int) int {
	raw := BaseScore - MovePenalty*moves - PenaltyPerSecond*(elapsedMs/1000)
	if raw < 0 {
		return 0
	}
	return raw
}

type Breakdown struct {
	Base          int
	MovePenalty   int
	TimePenalty   int
	ElapsedSecond int
	Final         int
}

func ScoreBreakdown(moves, elapsedMs int) Breakdown {
	seconds := elapsedMs / 1000
	return Breakdown{
		Base:          BaseScore,
		MovePenalty:   MovePenalty * moves,
		TimePenalty:   PenaltyPerSecond * seconds,
		ElapsedSecond: seconds,
		Final:         Score(moves, elapsedMs),
	}
}
