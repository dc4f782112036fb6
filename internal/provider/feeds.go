package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/metrics"
)

const feedsName = "rss"

// Feeds reads RSS/Atom feeds. Query.Text is the feed URL and Query.Limit
// caps how many entries are taken from it.
type Feeds struct {
	parser *gofeed.Parser
	now    func() time.Time
}

func NewFeeds(timeout time.Duration) *Feeds {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "geointel/1.0"
	return &Feeds{parser: parser, now: time.Now}
}

func (f *Feeds) Name() string { return feedsName }

func (f *Feeds) Fetch(ctx context.Context, q Query) ([]intel.Record, error) {
	metrics.Global.IncrementProviderRequest(feedsName)
	feed, err := f.parser.ParseURLWithContext(q.Text, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &ProviderError{Provider: feedsName, StatusCode: httpErr.StatusCode}
		}
		return nil, fmt.Errorf("rss %s: %w", q.Text, err)
	}

	entries := feed.Items
	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}

	items := make([]article, 0, len(entries))
	for _, it := range entries {
		date := it.Published
		if it.PublishedParsed != nil {
			date = it.PublishedParsed.Format(time.RFC3339)
		} else if date == "" {
			date = it.Updated
		}
		items = append(items, article{
			Title:   it.Title,
			Snippet: it.Description,
			Link:    it.Link,
			Date:    date,
			Source:  feed.Title,
		})
	}
	return toRecords(items, intel.OriginRSS, "RSS", useCurrentMonth, f.now()), nil
}
