package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func windowAt(window time.Duration, limit int) (*HitWindow, *time.Time) {
	w := NewHitWindow(window, limit)
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return current }
	return w, &current
}

func TestAllow_WithinLimit(t *testing.T) {
	w, _ := windowAt(time.Minute, 3)

	assert.True(t, w.Allow("1.2.3.4"))
	assert.True(t, w.Allow("1.2.3.4"))
	assert.True(t, w.Allow("1.2.3.4"))
	assert.False(t, w.Allow("1.2.3.4"))
}

func TestAllow_KeysIndependent(t *testing.T) {
	w, _ := windowAt(time.Minute, 1)

	assert.True(t, w.Allow("1.2.3.4"))
	assert.False(t, w.Allow("1.2.3.4"))
	assert.True(t, w.Allow("5.6.7.8"))
}

func TestAllow_WindowSlides(t *testing.T) {
	w, now := windowAt(time.Minute, 2)

	assert.True(t, w.Allow("ip"))
	assert.True(t, w.Allow("ip"))
	assert.False(t, w.Allow("ip"))

	*now = now.Add(61 * time.Second)
	assert.True(t, w.Allow("ip"), "hits outside the window no longer count")
}

func TestSweep_DropsIdleKeys(t *testing.T) {
	w, now := windowAt(time.Minute, 5)

	w.Allow("idle")
	w.Allow("active")

	*now = now.Add(2 * time.Minute)
	w.Allow("active")
	w.Sweep()

	stats := w.Stats()
	assert.Equal(t, 1, stats["tracked_keys"])
	assert.Equal(t, 1, stats["total_hits"])
}
