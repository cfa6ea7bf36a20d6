package domain

import "time"

type Summary struct {
	Title        string
	Description  string
	Extract      string
	ThumbnailURL string
	PageURL      string
}

type CachedSummary struct {
	Summary   Summary
	FetchedAt time.Time
}

// Fresh reports whether the entry may still be served at now.
func (c CachedSummary) Fresh(now time.Time, ttl time.Duration) bool {
	if c.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(c.FetchedAt) < ttl
}

// PageInfo is the result of resolving a title against the wiki, following
// redirects.
type PageInfo struct {
	Title   string
	Missing bool
	Invalid bool
}

type Existence struct {
	Exists         bool
	CanonicalTitle string
	Reason         string
}

type Article struct {
	Title string
	Links []string
}
