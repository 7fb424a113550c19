package cache

import (
	"sync"
	"time"
)

// HitWindow tracks request timestamps per key (client IP) over a sliding
// window. It is shared in-process only, which is acceptable for a
// single-instance deployment.
type HitWindow struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	window time.Duration
	limit  int

	now func() time.Time // override in tests
}

func NewHitWindow(window time.Duration, limit int) *HitWindow {
	return &HitWindow{
		hits:   make(map[string][]time.Time),
		window: window,
		limit:  limit,
		now:    time.Now,
	}
}

// Allow records a hit for the key and reports whether it stays within the
// window's limit.
func (w *HitWindow) Allow(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	recent := pruneBefore(w.hits[key], now.Add(-w.window))

	if len(recent) >= w.limit {
		w.hits[key] = recent
		return false
	}

	w.hits[key] = append(recent, now)
	return true
}

// Sweep drops keys whose hits have all aged out, so idle clients do not
// accumulate forever.
func (w *HitWindow) Sweep() {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.window)
	for key, hits := range w.hits {
		recent := pruneBefore(hits, cutoff)
		if len(recent) == 0 {
			delete(w.hits, key)
		} else {
			w.hits[key] = recent
		}
	}
}

// StartSweeper runs Sweep on a fixed interval for the life of the process.
func (w *HitWindow) StartSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			w.Sweep()
		}
	}()
}

// Stats returns counters for diagnostics.
func (w *HitWindow) Stats() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	total := 0
	for _, hits := range w.hits {
		total += len(hits)
	}

	return map[string]interface{}{
		"tracked_keys": len(w.hits),
		"total_hits":   total,
		"window":       w.window.String(),
		"limit":        w.limit,
	}
}

func pruneBefore(hits []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(hits) && !hits[idx].After(cutoff) {
		idx++
	}
	return hits[idx:]
}
