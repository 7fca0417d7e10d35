// Package grid lays out the jittered dot field behind the renderer.
package grid

import "math"

const (
	// JitterFraction bounds per-axis jitter as a fraction of spacing.
	JitterFraction = 0.06
	// RadiusSpread is the upper bound of the random radius increment.
	RadiusSpread = 1.4
)

// Source yields uniform values in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	Float64() float64
}

// Dot is a grid point in logical pixels.
type Dot struct {
	X, Y   float64
	Radius float64
}

// Layout is the unjittered cell arrangement for a viewport.
type Layout struct {
	Cols, Rows       int
	OriginX, OriginY float64
	Spacing          float64
}

// NewLayout covers width x height plus one cell of margin on every side. The
// grid is centred so every cell center stays within [-spacing, size+spacing]
// on both axes; when size is a multiple of spacing this puts the first center
// at -spacing/2.
func NewLayout(width, height, spacing float64) Layout {
	if width <= 0 || height <= 0 || spacing <= 0 {
		return Layout{Spacing: spacing}
	}
	cols := int(math.Ceil(width/spacing)) + 2
	rows := int(math.Ceil(height/spacing)) + 2
	return Layout{
		Cols:    cols,
		Rows:    rows,
		OriginX: origin(width, cols, spacing),
		OriginY: origin(height, rows, spacing),
		Spacing: spacing,
	}
}

func origin(size float64, cells int, spacing float64) float64 {
	inner := float64(cells-2) * spacing
	return (size-inner)/2 - spacing/2
}

// Len is the number of cells.
func (l Layout) Len() int {
	return l.Cols * l.Rows
}

// Center returns the unjittered center of the i-th cell in row-major order.
func (l Layout) Center(i int) (x, y float64) {
	c, r := i%l.Cols, i/l.Cols
	return l.OriginX + float64(c)*l.Spacing, l.OriginY + float64(r)*l.Spacing
}

// Build returns one dot per cell of NewLayout(width, height, spacing), in
// row-major order. A zero-sized viewport yields no dots.
func Build(width, height, spacing, dotRadius float64, rng Source) []Dot {
	l := NewLayout(width, height, spacing)
	n := l.Len()
	if n == 0 {
		return nil
	}
	jitter := spacing * JitterFraction * 2
	dots := make([]Dot, n)
	for i := range dots {
		x, y := l.Center(i)
		dots[i] = Dot{
			X:      x + (rng.Float64()-0.5)*jitter,
			Y:      y + (rng.Float64()-0.5)*jitter,
			Radius: dotRadius + rng.Float64()*RadiusSpread,
		}
	}
	return dots
}
