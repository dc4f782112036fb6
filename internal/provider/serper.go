package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/metrics"
	"github.com/deusflow/geointel/internal/ratelimit"
)

const serperName = "serper"

// Serper queries the Serper Google News endpoint.
type Serper struct {
	client *resty.Client
	apiKey string
	quota  *ratelimit.Quota
	now    func() time.Time
}

type serperNewsRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
	TBS string `json:"tbs"`
}

type serperNewsResponse struct {
	News []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Date    string `json:"date"`
		Source  string `json:"source"`
	} `json:"news"`
}

// NewSerper builds a Serper adapter. quota may be nil.
func NewSerper(baseURL, apiKey string, timeout time.Duration, quota *ratelimit.Quota) *Serper {
	return &Serper{
		client: newClient(baseURL, timeout),
		apiKey: apiKey,
		quota:  quota,
		now:    time.Now,
	}
}

func (s *Serper) Name() string { return serperName }

// Fetch issues one news search scoped to the past month.
func (s *Serper) Fetch(ctx context.Context, q Query) ([]intel.Record, error) {
	if err := s.quota.Use(); err != nil {
		return nil, err
	}
	metrics.Global.IncrementProviderRequest(s.Name())

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", s.apiKey).
		SetBody(serperNewsRequest{Q: q.Text, Num: q.Limit, GL: "us", HL: "en", TBS: "qdr:m"}).
		Post("/news")
	if err != nil {
		return nil, fmt.Errorf("serper request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &ProviderError{Provider: serperName, StatusCode: resp.StatusCode()}
	}

	var data serperNewsResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("serper decode: %w", err)
	}

	items := make([]article, 0, len(data.News))
	for _, n := range data.News {
		items = append(items, article{Title: n.Title, Snippet: n.Snippet, Link: n.Link, Date: n.Date, Source: n.Source})
	}
	return toRecords(items, intel.OriginSerper, "Google News", keepRawDate, s.now()), nil
}

func newClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "geointel/1.0")
}
