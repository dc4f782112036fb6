// Package app wires providers, pricing, caching and the static fallback
// into the single feed operation served over HTTP.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deusflow/geointel/internal/cache"
	"github.com/deusflow/geointel/internal/config"
	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/logger"
	"github.com/deusflow/geointel/internal/metrics"
	"github.com/deusflow/geointel/internal/minerals"
	"github.com/deusflow/geointel/internal/news"
	"github.com/deusflow/geointel/internal/provider"
	"github.com/deusflow/geointel/internal/ratelimit"
	"github.com/deusflow/geointel/internal/storage"
)

// Payload is the body served on a successful cycle.
type Payload struct {
	Items    []intel.Record `json:"items"`
	Minerals minerals.Table `json:"minerals"`
}

// Deps are the collaborators of a Service. Prices may be nil.
type Deps struct {
	Aggregator *news.Aggregator
	Prices     *minerals.Extractor
	Cache      *cache.Slot
	Snapshot   *storage.Snapshot
	Quotas     []*ratelimit.Quota
	Now        func() time.Time
}

type Service struct {
	agg      *news.Aggregator
	prices   *minerals.Extractor
	cache    *cache.Slot
	snapshot *storage.Snapshot
	quotas   []*ratelimit.Quota
	now      func() time.Time
}

// New builds a Service from configuration. Providers without a key are
// left out; with no keys at all the feed is the curated set.
func New(cfg *config.Config, queries config.Queries) *Service {
	opts := news.Options{
		Queries:  queries,
		Curated:  intel.Curated(),
		MinItems: cfg.MinProviderItems,
	}
	deps := Deps{
		Cache:    cache.New(),
		Snapshot: storage.NewSnapshot(cfg.SnapshotPath),
	}

	if cfg.HasSerper() {
		q := ratelimit.NewQuota("serper", cfg.SerperDailyQuota)
		opts.Primary = provider.NewSerper(cfg.SerperBaseURL, cfg.SerperAPIKey, cfg.RequestTimeout, q)
		deps.Prices = minerals.NewExtractor(cfg.SerperBaseURL, cfg.SerperAPIKey, cfg.RequestTimeout, q)
		deps.Quotas = append(deps.Quotas, q)
	}
	if cfg.HasGNews() {
		q := ratelimit.NewQuota("gnews", cfg.GNewsDailyQuota)
		opts.Secondary = provider.NewGNews(cfg.GNewsBaseURL, cfg.GNewsAPIKey, cfg.RequestTimeout, q)
		deps.Quotas = append(deps.Quotas, q)
	}
	// Feed URLs may arrive later through a queries reload.
	opts.Feeds = provider.NewFeeds(cfg.RequestTimeout)

	opts.Snapshot = deps.Snapshot
	deps.Aggregator = news.New(opts)

	logger.Info("Service configured",
		"serper", cfg.HasSerper(),
		"gnews", cfg.HasGNews(),
		"feeds", len(queries.Feeds),
		"snapshot", cfg.SnapshotPath)
	return NewWithDeps(deps)
}

func NewWithDeps(d Deps) *Service {
	if d.Cache == nil {
		d.Cache = cache.New()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		agg:      d.Aggregator,
		prices:   d.Prices,
		cache:    d.Cache,
		snapshot: d.Snapshot,
		quotas:   d.Quotas,
		now:      d.Now,
	}
}

// SetQueries hands reloaded query sets to the aggregator. The cached
// payload is kept until it expires.
func (s *Service) SetQueries(q config.Queries) {
	s.agg.SetQueries(q)
}

// Collect runs one aggregation cycle with pricing alongside it. It
// bypasses the cache.
func (s *Service) Collect(ctx context.Context) (news.Result, minerals.Outcome) {
	priced := make(chan minerals.Outcome, 1)
	go func() {
		priced <- minerals.Run(ctx, s.prices)
	}()

	res := s.agg.Aggregate(ctx)
	return res, <-priced
}

// Feed returns the serialized payload and whether it came from cache. An
// error means nothing could be built and the caller should fall back.
func (s *Service) Feed(ctx context.Context) ([]byte, bool, error) {
	now := s.now()
	if e, ok := s.cache.Get(now); ok {
		metrics.Global.IncrementCacheHit()
		return e.Payload, true, nil
	}
	metrics.Global.IncrementCacheMiss()

	log := logger.With("cycle", uuid.NewString())
	start := time.Now()

	res, priced := s.Collect(ctx)
	if priced.Err != nil {
		log.Warn("Commodity pricing incomplete", "error", priced.Err)
	}

	body, err := json.Marshal(Payload{Items: res.Items, Minerals: priced.Table})
	if err != nil {
		metrics.Global.SetError(err.Error())
		return nil, false, fmt.Errorf("marshal payload: %w", err)
	}

	s.cache.Set(body, now)

	elapsed := time.Since(start)
	metrics.Global.RecordCycle(elapsed, len(res.Items))
	log.Info("Aggregation cycle finished",
		"items", len(res.Items),
		"fetched", res.Stats.Fetched,
		"duplicates", res.Stats.Duplicates,
		"failed_queries", res.Stats.FailedQueries,
		"tiers", res.Stats.Tiers,
		"fallback", res.Stats.Fallback,
		"prices", priced.Table.Resolved(),
		"duration", elapsed)
	return body, false, nil
}

// StaticFallback is the body for the request-path failure route: the
// snapshot as a bare array, or an empty array when it cannot be read.
// It is never cached.
func (s *Service) StaticFallback() []byte {
	metrics.Global.IncrementFallback("reactive")
	if s.snapshot == nil {
		return []byte("[]")
	}

	recs, err := s.snapshot.Load()
	if err != nil {
		logger.Error("Static fallback unavailable", "error", err)
		return []byte("[]")
	}
	body, err := json.Marshal(recs)
	if err != nil {
		logger.Error("Static fallback unserializable", "error", err)
		return []byte("[]")
	}
	return body
}

// Stats is the health view: process metrics, quotas and cache age.
func (s *Service) Stats() map[string]interface{} {
	stats := metrics.Global.GetStats()

	quotas := make([]map[string]interface{}, 0, len(s.quotas))
	for _, q := range s.quotas {
		quotas = append(quotas, q.GetStats())
	}
	stats["quotas"] = quotas

	if age, ok := s.cache.Age(s.now()); ok {
		stats["cache_age_seconds"] = int64(age.Seconds())
		stats["cache_fresh"] = age < cache.TTL
	} else {
		stats["cache_fresh"] = false
	}

	q := s.agg.Queries()
	stats["queries"] = map[string]int{"serper": len(q.Serper), "gnews": len(q.GNews), "feeds": len(q.Feeds)}
	return stats
}
