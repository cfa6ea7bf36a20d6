package dto

import "iter"

// LinkSeq is a finite, restartable sequence of article titles.
type LinkSeq = iter.Seq[string]

type SummaryOutput struct {
	Title        string
	Description  string
	Extract      string
	ThumbnailURL string
	PageURL      string
}

type ExistenceOutput struct {
	Exists         bool
	CanonicalTitle string
	Reason         string
}

type PairOutput struct {
	Start ExistenceOutput
	Goal  ExistenceOutput
}

type ArticleOutput struct {
	Title     string
	PageURL   string
	Links     LinkSeq
	LinkCount int
}
