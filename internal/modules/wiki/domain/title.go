package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "wikigo/internal/platform/errors"
)

// excludedNamespaces are never navigable during a game. Talk namespaces are
// matched by the "talk" suffix check in IsArticleTitle.
var excludedNamespaces = []string{
	"special", "file", "image", "media", "category", "template", "help",
	"user", "talk", "portal", "wikipedia", "wp", "project", "draft",
	"module", "mediawiki", "book", "timedtext", "gadget", "topic",
}

// NormalizeTitle applies the wiki's title rules: underscores are spaces,
// runs of whitespace collapse, and the first letter is upper-cased.
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(r)) + title[size:]
}

// SameTitle compares titles the way the game compares a move against the goal.
func SameTitle(a, b string) bool {
	return strings.EqualFold(NormalizeTitle(a), NormalizeTitle(b))
}

// IsArticleTitle reports whether title lives in the main content namespace.
func IsArticleTitle(title string) bool {
	title = NormalizeTitle(title)
	if title == "" {
		return false
	}
	prefix, _, ok := strings.Cut(title, ":")
	if !ok {
		return true
	}
	ns := strings.ToLower(strings.TrimSpace(prefix))
	if strings.HasSuffix(ns, " talk") {
		return false
	}
	for _, excluded := range excludedNamespaces {
		if ns == excluded {
			return false
		}
	}
	return true
}

// ParseHref turns an href from rendered article HTML, a full wiki URL, or a
// percent-encoded path segment into a normalized article title. The query
// and fragment are dropped before decoding.
func ParseHref(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty link target", apperrors.ErrNotArticle)
	}

	var encoded string
	switch {
	case strings.HasPrefix(raw, "/wiki/"):
		encoded = strings.TrimPrefix(raw, "/wiki/")
	case strings.Contains(raw, "wikipedia.org/wiki/"):
		_, after, _ := strings.Cut(raw, "wikipedia.org/wiki/")
		encoded = after
	case strings.HasPrefix(raw, "./"):
		encoded = strings.TrimPrefix(raw, "./")
	case strings.HasPrefix(raw, "#"),
		strings.HasPrefix(raw, "/"),
		strings.HasPrefix(raw, "http://"),
		strings.HasPrefix(raw, "https://"),
		strings.HasPrefix(raw, "mailto:"):
		return "", fmt.Errorf("%w: %s", apperrors.ErrNotArticle, raw)
	default:
		encoded = raw
	}

	if i := strings.IndexAny(encoded, "?#"); i >= 0 {
		encoded = encoded[:i]
	}
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: undecodable target %q", apperrors.ErrNotArticle, raw)
	}
	return ParseTitle(decoded)
}

// ParseTitle validates an already decoded title. It never unescapes or cuts,
// so "?", "#" and "%" stay part of the title.
func ParseTitle(raw string) (string, error) {
	title := NormalizeTitle(raw)
	if title == "" {
		return "", fmt.Errorf("%w: empty title", apperrors.ErrNotArticle)
	}
	if !IsArticleTitle(title) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrNotArticle, title)
	}
	return title, nil
}

// PageURL builds the public page URL for title under base (which ends in /wiki/).
func PageURL(base, title string) string {
	return base + url.PathEscape(strings.ReplaceAll(NormalizeTitle(title), " ", "_"))
}
