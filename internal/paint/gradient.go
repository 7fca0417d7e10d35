package paint

import "math"

// MaxStops is the most color stops a gradient may carry.
const MaxStops = 4

// ColorStop is a straight-alpha color at a position along the gradient.
type ColorStop struct {
	Offset float64
	Color  RGB
	Alpha  float64
}

// Transparent is the fully transparent stop color used to fade gradients out.
var Transparent = RGB{}

// RadialGradient is a two-circle radial gradient as defined by the HTML canvas:
// color t is painted on the circle interpolated between (X0,Y0,R0) and
// (X1,Y1,R1), with the largest t winning. Coordinates are logical pixels.
type RadialGradient struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []ColorStop
}

// Premul is a premultiplied RGBA color with channels in [0,1].
type Premul struct {
	R, G, B, A float64
}

// Premultiplied converts a stop color.
func (s ColorStop) Premultiplied() Premul {
	a := Clamp01(s.Alpha)
	return Premul{
		R: float64(s.Color.R) / 255 * a,
		G: float64(s.Color.G) / 255 * a,
		B: float64(s.Color.B) / 255 * a,
		A: a,
	}
}

// Param solves for the gradient parameter t at point (x, y). ok is false where
// no circle of non-negative radius passes through the point, in which case
// nothing is painted there.
func (g RadialGradient) Param(x, y float64) (t float64, ok bool) {
	cdx, cdy := g.X1-g.X0, g.Y1-g.Y0
	dr := g.R1 - g.R0
	pdx, pdy := x-g.X0, y-g.Y0

	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + g.R0*dr
	c := pdx*pdx + pdy*pdy - g.R0*g.R0

	if math.Abs(a) < 1e-9 {
		if math.Abs(b) < 1e-9 {
			return 0, false
		}
		t = c / (2 * b)
		return t, g.R0+t*dr >= 0
	}

	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	s := math.Sqrt(disc)
	hi, lo := (b+s)/a, (b-s)/a
	if hi < lo {
		hi, lo = lo, hi
	}
	if g.R0+hi*dr >= 0 {
		return hi, true
	}
	if g.R0+lo*dr >= 0 {
		return lo, true
	}
	return 0, false
}

// At returns the premultiplied gradient color at (x, y).
func (g RadialGradient) At(x, y float64) Premul {
	t, ok := g.Param(x, y)
	if !ok || len(g.Stops) == 0 {
		return Premul{}
	}
	return g.ColorAt(t)
}

// ColorAt interpolates the stops in premultiplied space, padding beyond the
// first and last stop.
func (g RadialGradient) ColorAt(t float64) Premul {
	stops := g.Stops
	if t <= stops[0].Offset {
		return stops[0].Premultiplied()
	}
	for i := 1; i < len(stops); i++ {
		if t > stops[i].Offset {
			continue
		}
		lo, hi := stops[i-1], stops[i]
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Premultiplied()
		}
		return lerp(lo.Premultiplied(), hi.Premultiplied(), (t-lo.Offset)/span)
	}
	return stops[len(stops)-1].Premultiplied()
}

// Padded returns the stops extended to exactly MaxStops by repeating the last
// stop at offset 1, which is what fixed-size GPU uniforms need.
func (g RadialGradient) Padded() [MaxStops]ColorStop {
	var out [MaxStops]ColorStop
	n := copy(out[:], g.Stops)
	if n == 0 {
		return out
	}
	last := out[n-1]
	for i := n; i < MaxStops; i++ {
		out[i] = ColorStop{Offset: math.Max(1, last.Offset), Color: last.Color, Alpha: last.Alpha}
	}
	return out
}

func lerp(a, b Premul, f float64) Premul {
	return Premul{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
		A: a.A + (b.A-a.A)*f,
	}
}
