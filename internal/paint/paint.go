// Package paint describes what the background renderer draws, independent of
// where it is drawn. Every paint call names its CompositeMode explicitly; a
// Surface never carries a "current" mode between calls.
package paint

import "fmt"

// RGB is a color channel triple.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// CompositeMode is the rule combining newly painted pixels with the surface.
type CompositeMode int

const (
	// CompositeNormal is source-over.
	CompositeNormal CompositeMode = iota
	// CompositeAdditive brightens: screen blending, s + d - s*d.
	CompositeAdditive
	// CompositeMultiply darkens: s*(1-da) + d*(1-sa) + s*d.
	CompositeMultiply
)

func (m CompositeMode) String() string {
	switch m {
	case CompositeNormal:
		return "normal"
	case CompositeAdditive:
		return "additive"
	case CompositeMultiply:
		return "multiply"
	default:
		return fmt.Sprintf("CompositeMode(%d)", int(m))
	}
}

// Circle is a filled disc in logical pixels.
type Circle struct {
	X, Y, R float64
}

// Surface is a drawing target sized in logical pixels. Implementations scale
// by the device pixel ratio given to Resize so their backing store is
// round(width*scale) x round(height*scale).
type Surface interface {
	Resize(width, height, scale float64)
	Clear()
	FillGradient(g RadialGradient, mode CompositeMode)
	FillCircles(circles []Circle, c RGB, alpha float64, mode CompositeMode)
}

// BackingSize returns the physical size for a logical size at the given scale.
func BackingSize(width, height, scale float64) (int, int) {
	w := int(width*scale + 0.5)
	h := int(height*scale + 0.5)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
