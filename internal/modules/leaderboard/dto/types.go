package dto

// Dates travel as YYYY-MM-DD UTC days. An empty date means today.

type SubmitInput struct {
	Username string   `json:"username"`
	Date     string   `json:"date"`
	Moves    int      `json:"moves"`
	TimeMs   int      `json:"time_ms"`
	Score    int      `json:"score"`
	History  []string `json:"history"`
}

type SubmitOutput struct {
	Date       string `json:"date"`
	Stored     bool   `json:"stored"`
	GlobalRank *int   `json:"global_rank"`
}

type LeaderboardQuery struct {
	Date   string
	Limit  int
	Offset int
}

type EntryOutput struct {
	Position    int      `json:"position"`
	Username    string   `json:"username"`
	Date        string   `json:"date"`
	Moves       int      `json:"moves"`
	TimeMs      int      `json:"time_ms"`
	Score       int      `json:"score"`
	History     []string `json:"history,omitempty"`
	SubmittedAt string   `json:"submitted_at"`
}

type RankOutput struct {
	Username string `json:"username"`
	Date     string `json:"date"`
	Rank     *int   `json:"rank"`
}

type UserStatsOutput struct {
	Username         string `json:"username"`
	Streak           int    `json:"streak"`
	TotalCompletions int    `json:"total_completions"`
	GlobalRank       *int   `json:"global_rank"`
}

type SetDailyInput struct {
	Date  string
	Start string
	Goal  string
	Hint  string
}

type DailyOutput struct {
	Date         string   `json:"date"`
	StartTitle   string   `json:"start_title"`
	GoalTitle    string   `json:"goal_title"`
	Hint         string   `json:"hint,omitempty"`
	BestSolution []string `json:"best_solution,omitempty"`
}

type DailyStatsOutput struct {
	Date            string       `json:"date"`
	CompletionCount int          `json:"completion_count"`
	AverageMoves    float64      `json:"average_moves"`
	AverageTimeMs   float64      `json:"average_time_ms"`
	AverageScore    float64      `json:"average_score"`
	Best            *EntryOutput `json:"best"`
}

type YesterdayOutput struct {
	Challenge *DailyOutput     `json:"challenge"`
	Stats     DailyStatsOutput `json:"stats"`
	Top       []EntryOutput    `json:"top"`
}
