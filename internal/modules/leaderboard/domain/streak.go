package domain

import (
	"time"

	"wikigo/internal/platform/day"
)

// ComputeStreak counts consecutive completion days ending today or
// yesterday. Dates are normalized to UTC days and deduplicated.
func ComputeStreak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	set := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		set[day.Of(d)] = struct{}{}
	}

	cursor := day.Of(today)
	if _, ok := set[cursor]; !ok {
		cursor = day.AddDays(cursor, -1)
		if _, ok := set[cursor]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := set[cursor]; !ok {
			return streak
		}
		streak++
		cursor = day.AddDays(cursor, -1)
	}
}

// DistinctDays counts the number of different UTC days in dates.
func DistinctDays(dates []time.Time) int {
	set := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		set[day.Of(d)] = struct{}{}
	}
	return len(set)
}
