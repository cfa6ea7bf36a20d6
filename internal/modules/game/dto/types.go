package dto

import (
	"time"

	wikidto "wikigo/internal/modules/wiki/dto"
)

type StartInput struct {
	Mode           string
	Start          string
	Goal           string
	Date           string
	PracticeGameID string
	Challenge      string
	Category       string
}

type ChallengeOutput struct {
	Username string `json:"username"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Moves    int    `json:"moves"`
	Time     int    `json:"time"`
	Score    int    `json:"score"`
}

type SessionOutput struct {
	ID             string
	Generation     uint64
	Mode           string
	Status         string
	StartTitle     string
	GoalTitle      string
	Current        string
	History        []string
	MoveCount      int
	ElapsedMs      int
	FinalScore     int
	StartedAt      time.Time
	Challenge      *ChallengeOutput
	PracticeGameID string
	DailyDate      string
}

func (s SessionOutput) Won() bool { return s.Status == "won" }

type PlayOutput struct {
	Session SessionOutput
	// Article is nil when the move reached the goal.
	Article *wikidto.ArticleOutput
}

type NavigateInput struct {
	Generation uint64
	Target     string
}

type ScoreOutput struct {
	Base           int `json:"base"`
	MovePenalty    int `json:"move_penalty"`
	TimePenalty    int `json:"time_penalty"`
	ElapsedSeconds int `json:"elapsed_seconds"`
	Final          int `json:"final"`
}

type ComparisonOutput struct {
	Challenger ChallengeOutput `json:"challenger"`
	Score      int             `json:"score"`
	Outcome    string          `json:"outcome"`
}

type ResultOutput struct {
	Session    SessionOutput
	Breakdown  ScoreOutput
	Share      ChallengeOutput
	ShareURL   string
	ShareText  string
	Comparison *ComparisonOutput
}

const (
	SubmissionSubmitted = "submitted"
	SubmissionFailed    = "failed"
	SubmissionSkipped   = "skipped"
	SubmissionCompleted = "completed"
)

type SubmitOutput struct {
	Status      string
	Message     string
	JournalPath string
	GlobalRank  *int
}

type RunOutput struct {
	SessionID  string
	Mode       string
	Username   string
	Start      string
	Goal       string
	History    []string
	Moves      int
	ElapsedMs  int
	Score      int
	WonAt      time.Time
	Outcome    string
	Submission string
	Path       string
}
