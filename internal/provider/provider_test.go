package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/geointel/internal/intel"
	"github.com/deusflow/geointel/internal/metrics"
	"github.com/deusflow/geointel/internal/ratelimit"
)

var fixedNow = time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

func TestSerper_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/news", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ukraine offensive", body["q"])
		assert.Equal(t, float64(7), body["num"])
		assert.Equal(t, "us", body["gl"])
		assert.Equal(t, "en", body["hl"])
		assert.Equal(t, "qdr:m", body["tbs"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"news":[
			{"title":"Missile strike hits Ukraine grid","link":"https://a.example/1","snippet":"Power <b>cut</b> across the east","date":"Feb 22, 2026","source":"Reuters"},
			{"title":"Tariff talks stall","link":"https://a.example/2","snippet":"","date":"2 days ago"},
			{"title":"","link":"https://a.example/3","snippet":"no title"},
			{"title":"Quiet headline","link":"https://a.example/4","snippet":"nothing here"}
		]}`))
	}))
	defer srv.Close()

	s := NewSerper(srv.URL, "secret", 5*time.Second, nil)
	s.now = func() time.Time { return fixedNow }

	recs, err := s.Fetch(context.Background(), Query{Text: "ukraine offensive", Limit: 7})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	first := recs[0]
	assert.Equal(t, "Missile strike hits Ukraine grid", first.Subject)
	assert.Equal(t, "Geopolitics / Conflict", first.Sector)
	assert.Equal(t, "Geopolitics & Conflict", first.Category)
	assert.Equal(t, "49", first.Latitude)
	assert.Equal(t, "31.2", first.Longitude)
	assert.Equal(t, "Reuters", first.KeyPlayers)
	assert.Equal(t, "Reuters", first.SourceLabel)
	assert.Equal(t, "Power cut across the east", first.Impact)
	assert.Equal(t, "LIVE - Feb 2026", first.Timeline)
	assert.Equal(t, "https://a.example/1", first.URL)
	assert.True(t, first.IsScraped)
	assert.False(t, first.IsCurated)
	assert.Equal(t, intel.OriginSerper, first.Origin)

	second := recs[1]
	assert.Equal(t, "Economy / Global", second.Sector)
	assert.Equal(t, "Global News", second.KeyPlayers)
	assert.Equal(t, "Google News", second.SourceLabel)
	assert.Equal(t, "Tariff talks stall", second.Impact)
	assert.Equal(t, "LIVE - 2 days ago", second.Timeline)

	third := recs[2]
	assert.Equal(t, "20", third.Latitude)
	assert.Equal(t, "0", third.Longitude)
	assert.Equal(t, "Geopolitics / Conflict", third.Sector)
}

func TestSerper_MissingDateUsesCurrentMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"news":[{"title":"Drone sighting","link":"https://a.example/x"}]}`))
	}))
	defer srv.Close()

	s := NewSerper(srv.URL, "k", time.Second, nil)
	s.now = func() time.Time { return fixedNow }
	recs, err := s.Fetch(context.Background(), Query{Text: "q", Limit: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "LIVE - Mar 2026", recs[0].Timeline)
}

func TestSerper_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewSerper(srv.URL, "bad", time.Second, nil).Fetch(context.Background(), Query{Text: "q", Limit: 1})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "serper", perr.Provider)
	assert.Equal(t, http.StatusForbidden, perr.StatusCode)
}

func TestSerper_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewSerper(srv.URL, "k", time.Second, nil).Fetch(context.Background(), Query{Text: "q", Limit: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serper decode")
}

func TestSerper_QuotaExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"news":[]}`))
	}))
	defer srv.Close()

	s := NewSerper(srv.URL, "k", time.Second, ratelimit.NewQuota("serper", 1))
	before := requestCount()
	_, err := s.Fetch(context.Background(), Query{Text: "q", Limit: 1})
	require.NoError(t, err)
	_, err = s.Fetch(context.Background(), Query{Text: "q", Limit: 1})
	assert.True(t, errors.Is(err, ratelimit.ErrQuotaExceeded))
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, before+1, requestCount(), "refused queries are not counted as requests")
}

func TestGNews_QuotaExhaustedIsNotCounted(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	g := NewGNews(srv.URL, "k", time.Second, ratelimit.NewQuota("gnews", 1))
	_, err := g.Fetch(context.Background(), Query{Text: "q", Limit: 1})
	require.NoError(t, err)

	before := requestCount()
	_, failed := FanOut(context.Background(), g, []Query{{Text: "a", Limit: 1}, {Text: "b", Limit: 1}})
	assert.Equal(t, 2, failed)
	assert.Equal(t, before, requestCount())
	assert.Equal(t, int32(1), hits.Load())
}

func requestCount() int64 {
	return metrics.Global.GetStats()["provider_requests"].(int64)
}

func TestGNews_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v4/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "global economy", q.Get("q"))
		assert.Equal(t, "en", q.Get("lang"))
		assert.Equal(t, "any", q.Get("country"))
		assert.Equal(t, "5", q.Get("max"))
		assert.Equal(t, "publishedAt", q.Get("sortby"))
		assert.Equal(t, "tok", q.Get("token"))

		_, _ = w.Write([]byte(`{"articles":[
			{"title":"Inflation cools in Germany","description":"Prices ease","url":"https://g.example/1","publishedAt":"2026-01-15T08:00:00Z","source":{"name":"DW"}},
			{"title":"Vaccine rollout","description":"","url":"https://g.example/2","publishedAt":"garbage"}
		]}`))
	}))
	defer srv.Close()

	g := NewGNews(srv.URL, "tok", time.Second, nil)
	g.now = func() time.Time { return fixedNow }

	recs, err := g.Fetch(context.Background(), Query{Text: "global economy", Limit: 5})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Economy / Global", recs[0].Sector)
	assert.Equal(t, "51.2", recs[0].Latitude)
	assert.Equal(t, "10.5", recs[0].Longitude)
	assert.Equal(t, "DW", recs[0].SourceLabel)
	assert.Equal(t, "LIVE - Jan 2026", recs[0].Timeline)
	assert.Equal(t, intel.OriginGNews, recs[0].Origin)

	assert.Equal(t, "Health / Society", recs[1].Sector)
	assert.Equal(t, "GNews", recs[1].SourceLabel)
	assert.Equal(t, "Global News", recs[1].KeyPlayers)
	assert.Equal(t, "Vaccine rollout", recs[1].Impact)
	assert.Equal(t, "LIVE - Mar 2026", recs[1].Timeline)
}

func TestGNews_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewGNews(srv.URL, "tok", time.Second, nil).Fetch(context.Background(), Query{Text: "q", Limit: 1})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 429, perr.StatusCode)
	assert.Equal(t, "gnews error: 429", perr.Error())
}

func TestFeeds_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel><title>World Desk</title>
<item><title>Flooding displaces thousands in Pakistan</title><link>https://r.example/1</link>
<description>&lt;p&gt;Rivers burst their levees&lt;/p&gt;</description><pubDate>Mon, 02 Feb 2026 10:00:00 GMT</pubDate></item>
<item><title>Second</title><link>https://r.example/2</link></item>
<item><title>Third</title><link>https://r.example/3</link></item>
</channel></rss>`))
	}))
	defer srv.Close()

	f := NewFeeds(time.Second)
	f.now = func() time.Time { return fixedNow }

	recs, err := f.Fetch(context.Background(), Query{Text: srv.URL, Limit: 2})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Environment / Energy", recs[0].Sector)
	assert.Equal(t, "Rivers burst their levees", recs[0].Impact)
	assert.Equal(t, "World Desk", recs[0].SourceLabel)
	assert.Equal(t, "LIVE - Feb 2026", recs[0].Timeline)
	assert.Equal(t, intel.OriginRSS, recs[0].Origin)
	assert.Equal(t, "LIVE - Mar 2026", recs[1].Timeline)
}

type stubProvider struct {
	name    string
	results map[string][]intel.Record
	errs    map[string]error
	delay   map[string]time.Duration
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(ctx context.Context, q Query) ([]intel.Record, error) {
	if d := s.delay[q.Text]; d > 0 {
		time.Sleep(d)
	}
	if err := s.errs[q.Text]; err != nil {
		return nil, err
	}
	return s.results[q.Text], nil
}

func rec(subject string) intel.Record {
	return intel.Record{Subject: subject, URL: "https://x.example/" + subject}
}

func TestFanOut_PreservesOrderAndSwallowsFailures(t *testing.T) {
	p := &stubProvider{
		name: "stub",
		results: map[string][]intel.Record{
			"a": {rec("a1"), rec("a2")},
			"c": {rec("c1")},
		},
		errs:  map[string]error{"b": &ProviderError{Provider: "stub", StatusCode: 500}},
		delay: map[string]time.Duration{"a": 30 * time.Millisecond},
	}

	recs, failed := FanOut(context.Background(), p, []Query{{Text: "a"}, {Text: "b"}, {Text: "c"}})
	assert.Equal(t, 1, failed)
	require.Len(t, recs, 3)
	assert.Equal(t, "a1", recs[0].Subject)
	assert.Equal(t, "a2", recs[1].Subject)
	assert.Equal(t, "c1", recs[2].Subject)
}

func TestFanOut_AllFail(t *testing.T) {
	boom := errors.New("boom")
	p := &stubProvider{name: "stub", errs: map[string]error{"a": boom, "b": boom}}

	recs, failed := FanOut(context.Background(), p, []Query{{Text: "a"}, {Text: "b"}})
	assert.Empty(t, recs)
	assert.Equal(t, 2, failed)
}

func TestTimeline(t *testing.T) {
	assert.Equal(t, "LIVE - Mar 2026", timeline("", fixedNow, keepRawDate))
	assert.Equal(t, "LIVE - Dec 2025", timeline("2025-12-30T10:00:00Z", fixedNow, keepRawDate))
	assert.Equal(t, "LIVE - 5 hours ago", timeline("5 hours ago", fixedNow, keepRawDate))
	assert.Equal(t, "LIVE - Mar 2026", timeline("5 hours ago", fixedNow, useCurrentMonth))
}
