// Package ratelimit implements per-key sliding-window rate limiting for the
// request governor. Counters are in-memory and single-process.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	stamps []time.Time
}

// Limiter tracks the timestamps of admitted events per key over a trailing
// window. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*window

	now func() time.Time
}

func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow prunes timestamps older than now-windowDur for key, then admits the
// event only if fewer than limit remain. Rejected events record nothing, so a
// key's state never grows past limit entries.
func (l *Limiter) Allow(key string, windowDur time.Duration, limit int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.buckets[key]
	if !ok {
		w = &window{}
		l.buckets[key] = w
	}

	now := l.now()
	cutoff := now.Add(-windowDur)
	kept := w.stamps[:0]
	for _, ts := range w.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.stamps = kept

	if len(w.stamps) >= limit {
		return false
	}
	w.stamps = append(w.stamps, now)
	return true
}
