// Package news merges curated records with provider results into one
// ordered, deduplicated feed.
package news

import (
	"context"
	"sync"

	"github.com/deusflow/geointel/internal/config"
	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/logger"
	"github.com/deusflow/geointel/internal/metrics"
	"github.com/deusflow/geointel/internal/provider"
)

// DefaultMinItems is the provider record count below which the next tier
// is consulted.
const DefaultMinItems = 5

// SnapshotSource loads the bundled static feed.
type SnapshotSource interface {
	Load() ([]intel.Record, error)
}

// Options configures an Aggregator. Any provider may be nil.
type Options struct {
	Primary   provider.Provider
	Secondary provider.Provider
	Feeds     provider.Provider
	Queries   config.Queries
	Curated   []intel.Record
	MinItems  int
	Snapshot  SnapshotSource
}

// Aggregator runs the tiered provider fan-out for one feed.
type Aggregator struct {
	primary   provider.Provider
	secondary provider.Provider
	feeds     provider.Provider
	curated   []intel.Record
	minItems  int
	snapshot  SnapshotSource

	mu      sync.RWMutex
	queries config.Queries
}

// Stats describes one aggregation pass.
type Stats struct {
	Fetched       int
	Duplicates    int
	FailedQueries int
	Tiers         []string
	Fallback      bool
}

// Result is the ordered feed and how it was built.
type Result struct {
	Items []intel.Record
	Stats Stats
}

func New(opts Options) *Aggregator {
	minItems := opts.MinItems
	if minItems <= 0 {
		minItems = DefaultMinItems
	}
	return &Aggregator{
		primary:   opts.Primary,
		secondary: opts.Secondary,
		feeds:     opts.Feeds,
		curated:   opts.Curated,
		minItems:  minItems,
		snapshot:  opts.Snapshot,
		queries:   opts.Queries,
	}
}

// SetQueries swaps the query sets used by subsequent passes.
func (a *Aggregator) SetQueries(q config.Queries) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = q
}

// Queries returns the query sets currently in use.
func (a *Aggregator) Queries() config.Queries {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.queries
}

// Aggregate builds the feed. Provider failures are absorbed; the result is
// always usable, possibly empty.
func (a *Aggregator) Aggregate(ctx context.Context) Result {
	q := a.Queries()
	var stats Stats
	var fetched []intel.Record

	tiers := []struct {
		p       provider.Provider
		queries []config.QuerySpec
	}{
		{a.primary, q.Serper},
		{a.secondary, q.GNews},
		{a.feeds, q.Feeds},
	}

	for i, tier := range tiers {
		if tier.p == nil || len(tier.queries) == 0 {
			continue
		}
		if i > 0 && len(fetched) >= a.minItems {
			break
		}
		recs, failed := provider.FanOut(ctx, tier.p, toQueries(tier.queries))
		fetched = append(fetched, recs...)
		stats.FailedQueries += failed
		stats.Tiers = append(stats.Tiers, tier.p.Name())
		logger.Info("Provider tier fetched", "provider", tier.p.Name(), "records", len(recs), "failed_queries", failed)
	}
	stats.Fetched = len(fetched)

	unique := a.dedupe(fetched)
	stats.Duplicates = len(fetched) - len(unique)
	metrics.Global.AddDuplicatesFiltered(stats.Duplicates)

	items := make([]intel.Record, 0, len(a.curated)+len(unique))
	items = append(items, a.curated...)
	items = append(items, unique...)

	if len(items) == 0 {
		stats.Fallback = true
		items = a.loadSnapshot()
	}

	return Result{Items: items, Stats: stats}
}

// dedupe drops provider records whose URL was already seen, curated URLs
// included. Records without a URL are kept.
func (a *Aggregator) dedupe(recs []intel.Record) []intel.Record {
	seen := make(map[string]struct{}, len(a.curated)+len(recs))
	for _, c := range a.curated {
		if c.URL != "" {
			seen[c.URL] = struct{}{}
		}
	}

	out := make([]intel.Record, 0, len(recs))
	for _, r := range recs {
		if r.URL == "" {
			out = append(out, r)
			continue
		}
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (a *Aggregator) loadSnapshot() []intel.Record {
	if a.snapshot == nil {
		return []intel.Record{}
	}
	metrics.Global.IncrementFallback("proactive")

	recs, err := a.snapshot.Load()
	if err != nil {
		logger.Warn("Static snapshot unavailable", "error", err)
		return []intel.Record{}
	}
	for i := range recs {
		recs[i].IsScraped = true
	}
	logger.Info("Serving static snapshot", "items", len(recs))
	return recs
}

func toQueries(specs []config.QuerySpec) []provider.Query {
	out := make([]provider.Query, 0, len(specs))
	for _, s := range specs {
		out = append(out, provider.Query{Text: s.Q, Limit: s.Limit})
	}
	return out
}
