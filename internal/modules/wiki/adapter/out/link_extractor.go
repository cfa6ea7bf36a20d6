package out

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	wikiout "wikigo/internal/modules/wiki/port/out"
)

// skippedClasses mark page furniture whose links are not part of the prose.
var skippedClasses = []string{
	"navbox",
	"reflist",
	"reference",
	"references",
	"mw-editsection",
	"hatnote",
	"catlinks",
	"mw-cite-backlink",
	"infobox-navbar",
	"sistersitebox",
}

type HTMLLinkExtractor struct{}

func NewHTMLLinkExtractor() wikiout.LinkExtractor {
	return HTMLLinkExtractor{}
}

// Extract returns raw href values of anchors in document order.
func (HTMLLinkExtractor) Extract(content string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse article html: %w", err)
	}
	var hrefs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipped(n) {
				return
			}
			if n.Data == "a" {
				if href := attr(n, "href"); href != "" {
					hrefs = append(hrefs, href)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return hrefs, nil
}

func skipped(n *html.Node) bool {
	switch n.Data {
	case "style", "script", "sup":
		return true
	}
	classes := strings.Fields(attr(n, "class"))
	for _, class := range classes {
		for _, skip := range skippedClasses {
			if class == skip {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
