package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	CyclesRun          int64
	CacheHits          int64
	CacheMisses        int64
	ProviderRequests   int64
	ProviderFailures   int64
	DuplicatesFiltered int64
	FallbackServed     int64
	PricesResolved     int64

	// Timings
	LastCycleTime    time.Duration
	AverageCycleTime time.Duration
	TotalCycleTime   time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool

	registry   *prometheus.Registry
	cycles     prometheus.Counter
	cycleDur   prometheus.Histogram
	cache      *prometheus.CounterVec
	requests   *prometheus.CounterVec
	failures   *prometheus.CounterVec
	duplicates prometheus.Counter
	fallbacks  *prometheus.CounterVec
	prices     prometheus.Counter
	items      prometheus.Gauge
}

// New builds a Metrics with its own Prometheus registry.
func New() *Metrics {
	m := &Metrics{IsHealthy: true, registry: prometheus.NewRegistry()}

	m.cycles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "geointel",
		Name:      "aggregation_cycles_total",
		Help:      "Aggregation cycles run (cache misses that reached providers)",
	})
	m.cycleDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "geointel",
		Name:      "aggregation_duration_seconds",
		Help:      "Wall time of one aggregation cycle",
		Buckets:   prometheus.DefBuckets,
	})
	m.cache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geointel",
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by result",
	}, []string{"result"})
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geointel",
		Name:      "provider_requests_total",
		Help:      "Upstream provider requests issued",
	}, []string{"provider"})
	m.failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geointel",
		Name:      "provider_failures_total",
		Help:      "Upstream provider requests that failed",
	}, []string{"provider"})
	m.duplicates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "geointel",
		Name:      "duplicates_filtered_total",
		Help:      "Provider records dropped by URL dedup",
	})
	m.fallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geointel",
		Name:      "fallback_served_total",
		Help:      "Static snapshot loads by path",
	}, []string{"path"})
	m.prices = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "geointel",
		Name:      "commodity_prices_resolved_total",
		Help:      "Commodity prices populated from search snippets",
	})
	m.items = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "geointel",
		Name:      "feed_items",
		Help:      "Items in the last aggregated feed",
	})

	m.registry.MustRegister(
		m.cycles, m.cycleDur, m.cache, m.requests, m.failures,
		m.duplicates, m.fallbacks, m.prices, m.items,
		collectors.NewGoCollector(),
	)
	return m
}

var Global = New()

// Handler serves the Prometheus exposition for this Metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncrementCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
	m.cache.WithLabelValues("hit").Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
	m.cache.WithLabelValues("miss").Inc()
}

func (m *Metrics) IncrementProviderRequest(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderRequests++
	m.requests.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementProviderFailure(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderFailures++
	m.failures.WithLabelValues(provider).Inc()
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
	m.duplicates.Add(float64(n))
}

// IncrementFallback records a snapshot load; path is "proactive" or
// "reactive".
func (m *Metrics) IncrementFallback(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackServed++
	m.fallbacks.WithLabelValues(path).Inc()
}

func (m *Metrics) AddPricesResolved(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PricesResolved += int64(n)
	m.prices.Add(float64(n))
}

// RecordCycle stores the duration and size of a finished aggregation.
func (m *Metrics) RecordCycle(duration time.Duration, items int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CyclesRun++
	m.LastCycleTime = duration
	m.TotalCycleTime += duration
	m.AverageCycleTime = m.TotalCycleTime / time.Duration(m.CyclesRun)
	m.LastRunTime = time.Now()
	m.IsHealthy = true

	m.cycles.Inc()
	m.cycleDur.Observe(duration.Seconds())
	m.items.Set(float64(items))
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"cycles_run":            m.CyclesRun,
		"cache_hits":            m.CacheHits,
		"cache_misses":          m.CacheMisses,
		"provider_requests":     m.ProviderRequests,
		"provider_failures":     m.ProviderFailures,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"fallback_served":       m.FallbackServed,
		"prices_resolved":       m.PricesResolved,
		"last_cycle_time_ms":    m.LastCycleTime.Milliseconds(),
		"average_cycle_time_ms": m.AverageCycleTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
