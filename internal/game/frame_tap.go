package game

import "time"

// frameTap records the last N frame intervals in a ring buffer so the debug
// overlay can show a smoothed frame rate.
type frameTap struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
	last      time.Time
}

func newFrameTap(ringSize int) *frameTap {
	return &frameTap{buffer: make([]time.Duration, ringSize)}
}

// mark records the interval since the previous mark.
func (t *frameTap) mark(now time.Time) {
	if !t.last.IsZero() {
		t.buffer[t.nextIndex] = now.Sub(t.last)
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
		if t.filled < len(t.buffer) {
			t.filled++
		}
	}
	t.last = now
}

// fps averages over the recorded intervals.
func (t *frameTap) fps() float64 {
	if t.filled == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < t.filled; i++ {
		total += t.buffer[i]
	}
	if total <= 0 {
		return 0
	}
	return float64(t.filled) / total.Seconds()
}
