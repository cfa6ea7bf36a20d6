package dto

import "time"

type GameOutput struct {
	ID         string
	StartTitle string
	GoalTitle  string
	Status     string
	// Solution is only filled once the player has viewed it or finished.
	Solution  []string
	CreatedAt time.Time
}

type AddGameInput struct {
	ID       string
	Start    string
	Goal     string
	Solution []string
}
