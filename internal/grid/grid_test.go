package grid

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestBuildCount(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		spacing       float64
		want          int
	}{
		{"hero", 1120, 700, 56, 330},
		{"multiple of spacing", 560, 280, 56, 12 * 7},
		{"not a multiple", 100, 100, 56, 16},
		{"smaller than a cell", 10, 10, 56, 9},
		{"zero width", 0, 700, 56, 0},
		{"zero height", 1120, 0, 56, 0},
		{"negative", -5, 100, 56, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dots := Build(tt.width, tt.height, tt.spacing, 3, constSource(0.5))
			assert.Len(t, dots, tt.want)
			if tt.want > 0 {
				cols := int(math.Ceil(tt.width/tt.spacing)) + 2
				rows := int(math.Ceil(tt.height/tt.spacing)) + 2
				assert.Equal(t, cols*rows, len(dots))
			}
		})
	}
}

func TestLayoutCentersStayInMargin(t *testing.T) {
	sizes := [][2]float64{{1120, 700}, {1024, 640}, {100, 100}, {57, 55}, {1, 1}, {1919.5, 1080.25}}
	for _, spacing := range []float64{56, 13, 100} {
		for _, sz := range sizes {
			w, h := sz[0], sz[1]
			l := NewLayout(w, h, spacing)
			require.Positive(t, l.Len())
			for i := 0; i < l.Len(); i++ {
				x, y := l.Center(i)
				assert.GreaterOrEqual(t, x, -spacing, "x of cell %d in %vx%v/%v", i, w, h, spacing)
				assert.LessOrEqual(t, x, w+spacing, "x of cell %d in %vx%v/%v", i, w, h, spacing)
				assert.GreaterOrEqual(t, y, -spacing, "y of cell %d in %vx%v/%v", i, w, h, spacing)
				assert.LessOrEqual(t, y, h+spacing, "y of cell %d in %vx%v/%v", i, w, h, spacing)
			}
		}
	}
}

func TestLayoutMultipleOfSpacing(t *testing.T) {
	l := NewLayout(1120, 700, 56)
	x, y := l.Center(0)
	assert.InDelta(t, -28, x, 1e-9)
	assert.InDelta(t, -28, y, 1e-9)
	x, _ = l.Center(1)
	assert.InDelta(t, 28, x, 1e-9)
	_, y = l.Center(l.Cols)
	assert.InDelta(t, 28, y, 1e-9)
}

func TestJitterAndRadiusBounds(t *testing.T) {
	const spacing, radius = 56.0, 3.0
	l := NewLayout(400, 300, spacing)
	bound := spacing * JitterFraction

	for _, u := range []float64{0, 0.25, 0.5, 0.999999} {
		dots := Build(400, 300, spacing, radius, constSource(u))
		require.Len(t, dots, l.Len())
		for i, d := range dots {
			x, y := l.Center(i)
			assert.LessOrEqual(t, math.Abs(d.X-x), bound+1e-9)
			assert.LessOrEqual(t, math.Abs(d.Y-y), bound+1e-9)
			assert.GreaterOrEqual(t, d.Radius, radius)
			assert.Less(t, d.Radius, radius+RadiusSpread)
		}
	}

	low := Build(400, 300, spacing, radius, constSource(0))
	x, y := l.Center(0)
	assert.InDelta(t, x-bound, low[0].X, 1e-9)
	assert.InDelta(t, y-bound, low[0].Y, 1e-9)
	assert.Equal(t, radius, low[0].Radius)
}

func TestBuildRandomStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const spacing = 56.0
	l := NewLayout(1120, 700, spacing)
	dots := Build(1120, 700, spacing, 3, rng)
	for i, d := range dots {
		x, y := l.Center(i)
		assert.LessOrEqual(t, math.Abs(d.X-x), spacing*JitterFraction)
		assert.LessOrEqual(t, math.Abs(d.Y-y), spacing*JitterFraction)
	}
}

func TestBuildDeterministicWithSeed(t *testing.T) {
	a := Build(800, 600, 40, 2, rand.New(rand.NewPCG(7, 7)))
	b := Build(800, 600, 40, 2, rand.New(rand.NewPCG(7, 7)))
	c := Build(800, 600, 40, 2, rand.New(rand.NewPCG(8, 8)))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
