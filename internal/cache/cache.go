package cache

import (
	"sync"
	"time"
)

// TTL is how long an aggregated payload is served before a new cycle.
const TTL = 30 * time.Minute

// Entry is the serialized feed and the instant it was stored.
type Entry struct {
	Payload   []byte
	Timestamp time.Time
}

// Slot holds at most one payload. Callers pass the current time so expiry
// is testable without waiting.
type Slot struct {
	mu    sync.RWMutex
	entry *Entry
	ttl   time.Duration
}

func New() *Slot {
	return &Slot{ttl: TTL}
}

// NewWithTTL is New with a custom TTL.
func NewWithTTL(ttl time.Duration) *Slot {
	return &Slot{ttl: ttl}
}

// Get returns the stored entry if it is younger than the TTL at now.
func (s *Slot) Get(now time.Time) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil || now.Sub(s.entry.Timestamp) >= s.ttl {
		return Entry{}, false
	}
	return *s.entry, true
}

// Set replaces the stored entry.
func (s *Slot) Set(payload []byte, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry = &Entry{Payload: payload, Timestamp: now}
}

// Clear drops the stored entry.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = nil
}

// Age reports how old the stored entry is at now.
func (s *Slot) Age(now time.Time) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return 0, false
	}
	return now.Sub(s.entry.Timestamp), true
}
