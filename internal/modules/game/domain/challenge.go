package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	apperrors "wikigo/internal/platform/errors"
)

const AnonymousChallenger = "Someone"

// ChallengeDescriptor is the shareable summary of a won run. Time is in
// whole seconds.
type ChallengeDescriptor struct {
	Username string
	Start    string
	End      string
	Moves    int
	Time     int
	Score    int
}

type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeTied Outcome = "tied"
	OutcomeLost Outcome = "lost"
)

func NewChallenge(s Session, username string) (ChallengeDescriptor, error) {
	if s.Status != StatusWon {
		return ChallengeDescriptor{}, fmt.Errorf("%w: only won sessions can be shared", apperrors.ErrInvalidTransition)
	}
	if strings.TrimSpace(username) == "" {
		username = AnonymousChallenger
	}
	return ChallengeDescriptor{
		Username: username,
		Start:    s.StartTitle,
		End:      s.GoalTitle,
		Moves:    s.MoveCount(),
		Time:     s.FrozenElapsedMs / 1000,
		Score:    s.FinalScore,
	}, nil
}

func Serialize(d ChallengeDescriptor) string {
	values := url.Values{}
	values.Set("start", d.Start)
	values.Set("end", d.End)
	values.Set("moves", strconv.Itoa(d.Moves))
	values.Set("time", strconv.Itoa(d.Time))
	values.Set("score", strconv.Itoa(d.Score))
	values.Set("username", d.Username)
	return values.Encode()
}

// Deserialize accepts a bare query, a query with a leading "?", or a full
// share URL. Malformed input yields ok == false, never an error.
func Deserialize(raw string) (ChallengeDescriptor, bool) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return ChallengeDescriptor{}, false
		}
		raw = parsed.RawQuery
	} else if _, query, ok := strings.Cut(raw, "?"); ok {
		raw = query
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ChallengeDescriptor{}, false
	}

	// Text fields are kept verbatim so Serialize and Deserialize round-trip;
	// blank checks ignore surrounding space.
	d := ChallengeDescriptor{
		Start:    values.Get("start"),
		End:      values.Get("end"),
		Username: values.Get("username"),
	}
	if isBlank(d.Start) || isBlank(d.End) {
		return ChallengeDescriptor{}, false
	}
	if isBlank(d.Username) {
		d.Username = AnonymousChallenger
	}
	for key, dst := range map[string]*int{"moves": &d.Moves, "time": &d.Time, "score": &d.Score} {
		n, err := strconv.Atoi(strings.TrimSpace(values.Get(key)))
		if err != nil || n < 0 {
			return ChallengeDescriptor{}, false
		}
		*dst = n
	}
	return d, true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func CompareOutcome(finalScore, challengerScore int) Outcome {
	switch {
	case finalScore > challengerScore:
		return OutcomeWon
	case finalScore == challengerScore:
		return OutcomeTied
	default:
		return OutcomeLost
	}
}

func ShareURL(baseURL string, d ChallengeDescriptor) string {
	base := strings.TrimRight(baseURL, "?&")
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + Serialize(d)
}

func ShareText(d ChallengeDescriptor, link string) string {
	noun := "moves"
	if d.Moves == 1 {
		noun = "move"
	}
	return fmt.Sprintf("I got from %s to %s in %d %s and %ds (score %d). Can you beat me? %s",
		d.Start, d.End, d.Moves, noun, d.Time, d.Score, link)
}
