package background

import (
	"math"

	"github.com/iburimskiy/dotfield/internal/grid"
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/pointer"
)

const (
	// ParallaxEase and SpotlightEase are the per-frame smoothing factors.
	ParallaxEase  = 0.12
	SpotlightEase = 0.18

	// Spotlight rest position as a fraction of the viewport.
	SpotlightRestX = 0.5
	SpotlightRestY = 0.6

	ambianceParallax = 6.0

	darkSpotMinRadius  = 220.0
	lightSpotMinRadius = 280.0
	lightSpotScale     = 1.1
	lightDotMaxAlpha   = 0.22
	lightDotAlphaScale = 1.8
)

var (
	darkBase  = [3]paint.RGB{{R: 12, G: 12, B: 20}, {R: 10, G: 9, B: 24}, {R: 6, G: 6, B: 12}}
	lightBase = [3]paint.RGB{{R: 248, G: 249, B: 252}, {R: 245, G: 246, B: 250}, {R: 241, G: 242, B: 244}}
	lightDot  = paint.RGB{R: 63, G: 63, B: 70}
	lightSpot = paint.RGB{R: 17, G: 24, B: 39}
)

// Ease moves value toward target by factor.
func Ease(value, target, factor float64) float64 {
	return value + (target-value)*factor
}

func easePoint(p, target pointer.Point, factor float64) pointer.Point {
	return pointer.Point{X: Ease(p.X, target.X, factor), Y: Ease(p.Y, target.Y, factor)}
}

// SpotlightRest is where the spotlight sits before any pointer input.
func SpotlightRest(width, height float64) pointer.Point {
	return pointer.Point{X: width * SpotlightRestX, Y: height * SpotlightRestY}
}

// DotPosition applies the parallax offset to the i-th dot. The per-index
// multipliers vary depth slightly so the grid does not move as one plate.
func DotPosition(d grid.Dot, i int, offset pointer.Point) paint.Circle {
	return paint.Circle{
		X: d.X + offset.X*(0.6+float64(i%5)*0.02),
		Y: d.Y + offset.Y*(0.6+float64(i%7)*0.015),
		R: d.Radius,
	}
}

func (r *Renderer) step() {
	r.frames++

	r.parallax = easePoint(r.parallax, r.tracker.Target(), ParallaxEase)
	r.spot = easePoint(r.spot, r.spotTarget(), SpotlightEase)

	// Hold the surface for the whole frame; Unmount may release it meanwhile.
	s := r.surface
	s.Clear()
	if r.width <= 0 || r.height <= 0 {
		return
	}

	r.circles = r.circles[:0]
	for i, d := range r.dots {
		r.circles = append(r.circles, DotPosition(d, i, r.parallax))
	}

	if r.observer.Dark() {
		r.paintDark(s)
	} else {
		r.paintLight(s)
	}
}

func (r *Renderer) spotTarget() pointer.Point {
	if p, ok := r.tracker.Raw(); ok {
		return p
	}
	return SpotlightRest(r.width, r.height)
}

func (r *Renderer) paintDark(s paint.Surface) {
	w, h := r.width, r.height
	m := math.Max(w, h)
	cfg := r.cfg
	bd := cfg.BaseDarkness

	s.FillGradient(paint.RadialGradient{
		X0: w * 0.85, Y0: h * 0.1, R0: m * 0.05,
		X1: w * 1.1, Y1: h * 0.2, R1: m * 1.2,
		Stops: []paint.ColorStop{
			{Offset: 0, Color: darkBase[0], Alpha: bd},
			{Offset: 0.6, Color: darkBase[1], Alpha: math.Min(1, bd+0.02)},
			{Offset: 1, Color: darkBase[2], Alpha: math.Min(1, bd+0.04)},
		},
	}, paint.CompositeNormal)

	dot := cfg.DotColor.RGB()
	s.FillGradient(paint.RadialGradient{
		X0: w*SpotlightRestX - r.parallax.X*ambianceParallax,
		Y0: h*SpotlightRestY - r.parallax.Y*ambianceParallax,
		X1: w * SpotlightRestX, Y1: h * SpotlightRestY, R1: m * 0.9,
		Stops: []paint.ColorStop{
			{Offset: 0, Color: dot, Alpha: cfg.Opacity * 0.9},
			{Offset: 0.25, Color: dot, Alpha: cfg.Opacity * 0.35},
			{Offset: 1, Color: paint.Transparent},
		},
	}, paint.CompositeAdditive)

	s.FillCircles(r.circles, dot, cfg.Opacity, paint.CompositeNormal)

	spot := cfg.SpotlightColor.RGB()
	radius := math.Max(darkSpotMinRadius, cfg.SpotlightRadius)
	s.FillGradient(paint.RadialGradient{
		X0: r.spot.X, Y0: r.spot.Y,
		X1: r.spot.X, Y1: r.spot.Y, R1: radius,
		Stops: []paint.ColorStop{
			{Offset: 0, Color: spot, Alpha: math.Min(1, cfg.SpotlightStrength)},
			{Offset: 0.35, Color: spot, Alpha: math.Max(0, cfg.SpotlightStrength*0.35)},
			{Offset: 1, Color: paint.Transparent},
		},
	}, paint.CompositeAdditive)
}

func (r *Renderer) paintLight(s paint.Surface) {
	w, h := r.width, r.height
	m := math.Max(w, h)
	cfg := r.cfg

	s.FillGradient(paint.RadialGradient{
		X0: w * 0.9, Y0: h * 0.15, R0: m * 0.05,
		X1: w * 1.2, Y1: h * 0.2, R1: m * 1.2,
		Stops: []paint.ColorStop{
			{Offset: 0, Color: lightBase[0], Alpha: 0.98},
			{Offset: 0.6, Color: lightBase[1], Alpha: 0.98},
			{Offset: 1, Color: lightBase[2], Alpha: 0.98},
		},
	}, paint.CompositeNormal)

	s.FillCircles(r.circles, lightDot, math.Min(lightDotMaxAlpha, cfg.Opacity*lightDotAlphaScale), paint.CompositeNormal)

	radius := math.Max(lightSpotMinRadius, cfg.SpotlightRadius*lightSpotScale)
	s.FillGradient(paint.RadialGradient{
		X0: r.spot.X, Y0: r.spot.Y,
		X1: r.spot.X, Y1: r.spot.Y, R1: radius,
		Stops: []paint.ColorStop{
			{Offset: 0, Color: lightSpot, Alpha: 0.22},
			{Offset: 0.45, Color: lightSpot, Alpha: 0.12},
			{Offset: 1, Color: paint.Transparent},
		},
	}, paint.CompositeMultiply)
}
