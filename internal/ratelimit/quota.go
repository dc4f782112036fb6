package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/deusflow/geointel/internal/logger"
)

// ErrQuotaExceeded is returned once a provider spent its request budget for
// the current window.
var ErrQuotaExceeded = errors.New("provider quota exceeded")

// Quota is a per-provider request budget that resets every window (daily by
// default). A nil *Quota or a zero max means unlimited.
type Quota struct {
	mu       sync.Mutex
	provider string
	max      int
	used     int
	denied   int
	window   time.Duration
	resetAt  time.Time
	now      func() time.Time
}

// NewQuota creates a daily budget of max requests for provider.
func NewQuota(provider string, max int) *Quota {
	return NewQuotaWithClock(provider, max, 24*time.Hour, time.Now)
}

func NewQuotaWithClock(provider string, max int, window time.Duration, now func() time.Time) *Quota {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Quota{
		provider: provider,
		max:      max,
		window:   window,
		resetAt:  now().Add(window),
		now:      now,
	}
}

// Use consumes one request from the budget.
func (q *Quota) Use() error {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkReset()

	if q.max > 0 && q.used >= q.max {
		q.denied++
		logger.Warn("Provider quota reached", "provider", q.provider, "used", q.used, "limit", q.max)
		return fmt.Errorf("%s: %w", q.provider, ErrQuotaExceeded)
	}

	q.used++
	logger.Debug("Provider usage", "provider", q.provider, "used", q.used, "limit", q.max)
	return nil
}

// Remaining returns the requests left in this window, -1 when unlimited.
func (q *Quota) Remaining() int {
	if q == nil || q.max <= 0 {
		return -1
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.checkReset()
	return q.max - q.used
}

// GetStats returns the current counters.
func (q *Quota) GetStats() map[string]interface{} {
	if q == nil {
		return map[string]interface{}{"limit": 0}
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	return map[string]interface{}{
		"provider":   q.provider,
		"used":       q.used,
		"limit":      q.max,
		"denied":     q.denied,
		"reset_time": q.resetAt.Format(time.RFC3339),
	}
}

// checkReset resets counters if the window has passed. Caller holds mu.
func (q *Quota) checkReset() {
	if q.now().After(q.resetAt) {
		logger.Info("Resetting provider quota", "provider", q.provider, "used", q.used, "denied", q.denied)
		q.used = 0
		q.denied = 0
		q.resetAt = q.now().Add(q.window)
	}
}
