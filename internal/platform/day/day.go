// Package day holds the calendar-day rules shared by every module. All
// completion attribution happens on UTC days.
package day

import (
	"fmt"
	"time"

	"wikigo/internal/platform/clock"
	apperrors "wikigo/internal/platform/errors"
)

const Layout = "2006-01-02"

// Of truncates t to midnight UTC of its UTC calendar day.
func Of(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func Today(clk clock.Clock) time.Time {
	return Of(clk.Now())
}

func Format(t time.Time) string {
	return Of(t).Format(Layout)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q must be YYYY-MM-DD: %v", apperrors.ErrInvalidInput, s, err)
	}
	return t, nil
}

// ParseOr parses s, falling back to fallback when s is empty.
func ParseOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return Of(fallback), nil
	}
	return Parse(s)
}

func AddDays(t time.Time, n int) time.Time {
	return Of(t).AddDate(0, 0, n)
}
