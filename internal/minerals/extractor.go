package minerals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/deusflow/geointel/internal/logger"
	"github.com/deusflow/geointel/internal/metrics"
	"github.com/deusflow/geointel/internal/provider"
	"github.com/deusflow/geointel/internal/ratelimit"
)

const (
	preciousQuery   = "gold silver price per ounce today 2026"
	industrialQuery = "lithium cobalt copper price 2026 per tonne"
	rareEarthsQuery = "rare earth minerals supply chain status 2026"
)

// Extractor runs the commodity searches against Serper's web search.
type Extractor struct {
	client *resty.Client
	apiKey string
	quota  *ratelimit.Quota
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
}

type searchResponse struct {
	KnowledgeGraph *struct {
		Description string            `json:"description"`
		Attributes  map[string]string `json:"attributes"`
	} `json:"knowledgeGraph"`
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (r *searchResponse) texts() []string {
	out := make([]string, 0, len(r.Organic))
	for _, o := range r.Organic {
		out = append(out, o.Title+" "+o.Snippet)
	}
	return out
}

// NewExtractor shares the Serper key and quota with the news adapter.
func NewExtractor(baseURL, apiKey string, timeout time.Duration, quota *ratelimit.Quota) *Extractor {
	return &Extractor{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		apiKey: apiKey,
		quota:  quota,
	}
}

func (e *Extractor) search(ctx context.Context, q string, num int) (*searchResponse, error) {
	if err := e.quota.Use(); err != nil {
		return nil, err
	}
	metrics.Global.IncrementProviderRequest("serper")

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", e.apiKey).
		SetBody(searchRequest{Q: q, Num: num, GL: "us", HL: "en"}).
		Post("/search")
	if err != nil {
		metrics.Global.IncrementProviderFailure("serper")
		return nil, fmt.Errorf("serper search: %w", err)
	}
	if !resp.IsSuccess() {
		metrics.Global.IncrementProviderFailure("serper")
		return nil, &provider.ProviderError{Provider: "serper", StatusCode: resp.StatusCode()}
	}

	var data searchResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		metrics.Global.IncrementProviderFailure("serper")
		return nil, fmt.Errorf("serper search decode: %w", err)
	}
	return &data, nil
}

// Enrich runs the three searches in order and fills t in place. A failed
// search leaves its commodities unset and does not stop the others; the
// returned error joins every failure.
func (e *Extractor) Enrich(ctx context.Context, t *Table) error {
	var errs []error

	if data, err := e.search(ctx, preciousQuery, 5); err != nil {
		errs = append(errs, fmt.Errorf("precious: %w", err))
	} else {
		if kg := data.KnowledgeGraph; kg != nil {
			src := kg.Attributes["Price"]
			if src == "" {
				src = kg.Description
			}
			t.Gold.Price = knowledgeGraphPrice(src)
		}
		t.ApplyPrecious(data.texts())
	}

	if data, err := e.search(ctx, industrialQuery, 5); err != nil {
		errs = append(errs, fmt.Errorf("industrial: %w", err))
	} else {
		t.ApplyIndustrial(data.texts())
	}

	if data, err := e.search(ctx, rareEarthsQuery, 2); err != nil {
		errs = append(errs, fmt.Errorf("rare earths: %w", err))
	} else {
		var snippet string
		if len(data.Organic) > 0 {
			snippet = data.Organic[0].Snippet
		}
		t.ApplyRareEarths(snippet)
	}

	for _, err := range errs {
		logger.Warn("Commodity search skipped", "error", err)
	}
	return errors.Join(errs...)
}

// Outcome is the result of an isolated pricing run.
type Outcome struct {
	Table Table
	Err   error
}

// Run prices the reference table. It never panics and always returns a
// complete table; ex may be nil when no Serper key is configured.
func Run(ctx context.Context, ex *Extractor) (out Outcome) {
	out.Table = Reference()
	if ex == nil {
		return out
	}

	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("commodity pricing panicked: %v", r)
			logger.Error("Commodity pricing panicked", "panic", r)
		}
		metrics.Global.AddPricesResolved(out.Table.Resolved())
	}()

	out.Err = ex.Enrich(ctx, &out.Table)
	return out
}
