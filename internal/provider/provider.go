// Package provider adapts upstream news sources into intel records.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/scraper"
)

// Query is one search issued against a provider.
type Query struct {
	Text  string
	Limit int
}

// Provider fetches records for a single query. Implementations hold
// their own credentials.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]intel.Record, error)
}

// ProviderError is returned when an upstream answers with a non-2xx status.
type ProviderError struct {
	Provider   string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error: %d", e.Provider, e.StatusCode)
}

const defaultKeyPlayers = "Global News"

// article is the provider-neutral shape every adapter decodes into.
type article struct {
	Title   string
	Snippet string
	Link    string
	Date    string
	Source  string
}

// dateFallback selects what a present but unparseable date turns into.
type dateFallback int

const (
	keepRawDate dateFallback = iota
	useCurrentMonth
)

func monthLabel(t time.Time) string {
	return "LIVE - " + t.Format("Jan 2006")
}

func timeline(raw string, now time.Time, onBad dateFallback) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return monthLabel(now)
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return monthLabel(t)
	}
	if onBad == keepRawDate {
		return "LIVE - " + raw
	}
	return monthLabel(now)
}

// toRecord maps a decoded article onto the record schema. The second
// return is false when the article has no usable title.
func toRecord(a article, origin, defaultSource string, onBad dateFallback, now time.Time) (intel.Record, bool) {
	title := scraper.CleanText(a.Title)
	if title == "" {
		return intel.Record{}, false
	}
	snippet := scraper.CleanText(a.Snippet)
	source := strings.TrimSpace(a.Source)

	text := title + " " + snippet
	r := intel.Record{
		Subject:     title,
		KeyPlayers:  scraper.FirstNonEmpty(source, defaultKeyPlayers),
		Timeline:    timeline(a.Date, now, onBad),
		Impact:      scraper.FirstNonEmpty(snippet, title),
		SourceLabel: scraper.FirstNonEmpty(source, defaultSource),
		URL:         strings.TrimSpace(a.Link),
		IsScraped:   true,
		Origin:      origin,
	}
	r.SetSector(intel.Classify(text))
	r.SetCoordinate(intel.Locate(text))
	return r, true
}

func toRecords(items []article, origin, defaultSource string, onBad dateFallback, now time.Time) []intel.Record {
	out := make([]intel.Record, 0, len(items))
	for _, a := range items {
		if r, ok := toRecord(a, origin, defaultSource, onBad, now); ok {
			out = append(out, r)
		}
	}
	return out
}
