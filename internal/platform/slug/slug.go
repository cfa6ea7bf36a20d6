package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

const maxLen = 60

// Make turns an article title into a filesystem-safe fragment.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "article"
	}
	return s
}

// Pair joins two titles, as used for start→goal run names.
func Pair(a, b string) string {
	return Make(a) + "-to-" + Make(b)
}
