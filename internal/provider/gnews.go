package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/metrics"
	"github.com/deusflow/geointel/internal/ratelimit"
)

const gnewsName = "gnews"

// GNews queries the GNews v4 search API. Used as the backup tier.
type GNews struct {
	client *resty.Client
	apiKey string
	quota  *ratelimit.Quota
	now    func() time.Time
}

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// NewGNews builds a GNews adapter. quota may be nil.
func NewGNews(baseURL, apiKey string, timeout time.Duration, quota *ratelimit.Quota) *GNews {
	return &GNews{
		client: newClient(baseURL, timeout),
		apiKey: apiKey,
		quota:  quota,
		now:    time.Now,
	}
}

func (g *GNews) Name() string { return gnewsName }

func (g *GNews) Fetch(ctx context.Context, q Query) ([]intel.Record, error) {
	if err := g.quota.Use(); err != nil {
		return nil, err
	}
	metrics.Global.IncrementProviderRequest(g.Name())

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       q.Text,
			"lang":    "en",
			"country": "any",
			"max":     strconv.Itoa(q.Limit),
			"sortby":  "publishedAt",
			"token":   g.apiKey,
		}).
		Get("/api/v4/search")
	if err != nil {
		return nil, fmt.Errorf("gnews request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &ProviderError{Provider: gnewsName, StatusCode: resp.StatusCode()}
	}

	var data gnewsResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("gnews decode: %w", err)
	}

	items := make([]article, 0, len(data.Articles))
	for _, a := range data.Articles {
		items = append(items, article{Title: a.Title, Snippet: a.Description, Link: a.URL, Date: a.PublishedAt, Source: a.Source.Name})
	}
	return toRecords(items, intel.OriginGNews, "GNews", useCurrentMonth, g.now()), nil
}
