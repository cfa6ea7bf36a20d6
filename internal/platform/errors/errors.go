package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNotArticle        = errors.New("not a navigable article")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrFetchFailed       = errors.New("article fetch failed")
	ErrResponseTooLarge  = errors.New("upstream response too large")
	ErrStaleResult       = errors.New("result belongs to a previous session")
	ErrNoActiveSession   = errors.New("no active session")
	ErrInvariant         = errors.New("session invariant violated")
	ErrSubmissionFailed  = errors.New("leaderboard submission failed, your local result is unaffected")
)
