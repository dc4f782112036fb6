// Package scraper normalizes the free text that providers return in titles
// and snippets before it reaches the classifier or the front-end.
package scraper

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// markup matches a complete start or end tag, a comment or a doctype.
// A bare "<" in prose such as "x<y" does not match.
var markup = regexp.MustCompile(`<(?:[a-zA-Z][a-zA-Z0-9-]*(?:\s[^<>]*)?/?>|/[a-zA-Z][a-zA-Z0-9-]*\s*>|!--|![dD][oO][cC][tT][yY][pP][eE])`)

// junkPhrases are boilerplate tails some outlets append to descriptions.
var junkPhrases = []string{
	"Continue reading...",
	"Read more",
	"[Removed]",
}

// CleanText strips markup and entities, drops boilerplate and collapses
// whitespace. Plain text passes through unchanged apart from spacing.
func CleanText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	text := html.UnescapeString(s)
	if markup.MatchString(s) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	return trimJunk(text)
}

// trimJunk removes boilerplate phrases that end the text, repeatedly.
func trimJunk(text string) string {
	for {
		trimmed := false
		for _, phrase := range junkPhrases {
			if strings.HasSuffix(text, phrase) {
				text = strings.TrimSpace(strings.TrimSuffix(text, phrase))
				trimmed = true
			}
		}
		if !trimmed {
			return text
		}
	}
}

// FirstNonEmpty returns the first value that is non-empty after cleaning.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if c := CleanText(v); c != "" {
			return c
		}
	}
	return ""
}
