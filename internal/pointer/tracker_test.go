package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		p             Point
		width, height float64
		want          Point
	}{
		{"center", Point{50, 25}, 100, 50, Point{0, 0}},
		{"top left", Point{0, 0}, 100, 50, Point{-1, -1}},
		{"bottom right", Point{100, 50}, 100, 50, Point{1, 1}},
		{"outside is not clamped", Point{150, -25}, 100, 50, Point{2, -2}},
		{"zero size", Point{1, 1}, 0, 0, Point{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.p, tt.width, tt.height)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestTrackerMove(t *testing.T) {
	var tr Tracker
	_, seen := tr.Raw()
	assert.False(t, seen)
	assert.Equal(t, Point{}, tr.Target())

	tr.Move(0, 100, 200, 100)
	raw, seen := tr.Raw()
	assert.True(t, seen)
	assert.Equal(t, Point{0, 100}, raw)
	assert.InDelta(t, -ParallaxScale, tr.Target().X, 1e-9)
	assert.InDelta(t, ParallaxScale, tr.Target().Y, 1e-9)

	// x = 0 is a real sample, not "no input".
	tr.Move(0, 0, 200, 100)
	raw, seen = tr.Raw()
	assert.True(t, seen)
	assert.Equal(t, Point{0, 0}, raw)
}

func TestTrackerTouch(t *testing.T) {
	var tr Tracker
	tr.Touch(nil, 100, 100)
	_, seen := tr.Raw()
	assert.False(t, seen, "empty touch list is ignored")

	tr.Touch([]Point{{75, 25}, {0, 0}}, 100, 100)
	raw, _ := tr.Raw()
	assert.Equal(t, Point{75, 25}, raw)
	assert.InDelta(t, 9, tr.Target().X, 1e-9)
	assert.InDelta(t, -9, tr.Target().Y, 1e-9)

	tr.Reset()
	_, seen = tr.Raw()
	assert.False(t, seen)
	assert.Equal(t, Point{}, tr.Target())
}
