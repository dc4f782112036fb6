package provider

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/logger"
	"github.com/deusflow/geointel/internal/metrics"
)

// FanOut runs every query against p concurrently and waits for all of
// them. Results are flattened in query order. A failing query is logged
// and counted; it never cancels its siblings. Adapters count their own
// upstream requests.
func FanOut(ctx context.Context, p Provider, queries []Query) ([]intel.Record, int) {
	results := make([][]intel.Record, len(queries))
	var failed atomic.Int32

	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			recs, err := p.Fetch(ctx, q)
			if err != nil {
				failed.Add(1)
				metrics.Global.IncrementProviderFailure(p.Name())
				logger.Warn("Provider query failed", "provider", p.Name(), "query", q.Text, "error", err)
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	var total int
	for _, r := range results {
		total += len(r)
	}
	out := make([]intel.Record, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	logger.Debug("Provider fan-out finished", "provider", p.Name(), "queries", len(queries), "records", len(out), "failed", failed.Load())
	return out, int(failed.Load())
}
