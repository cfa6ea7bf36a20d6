package domain

import "time"

// RunRecord is the journal entry written for every won session.
type RunRecord struct {
	SessionID  string
	Mode       Mode
	Username   string
	Start      string
	Goal       string
	History    []string
	Moves      int
	ElapsedMs  int
	Score      int
	StartedAt  time.Time
	WonAt      time.Time
	Outcome    string
	Submission string
}

func NewRunRecord(s Session, username, outcome, submission string) RunRecord {
	return RunRecord{
		SessionID:  s.ID,
		Mode:       s.Mode,
		Username:   username,
		Start:      s.StartTitle,
		Goal:       s.GoalTitle,
		History:    append([]string(nil), s.History...),
		Moves:      s.MoveCount(),
		ElapsedMs:  s.FrozenElapsedMs,
		Score:      s.FinalScore,
		StartedAt:  s.StartedAt,
		WonAt:      s.WonAt,
		Outcome:    outcome,
		Submission: submission,
	}
}
