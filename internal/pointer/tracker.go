// Package pointer turns raw pointer and touch positions into the parallax
// target the renderer eases toward.
package pointer

// ParallaxScale is the offset in logical pixels at the viewport edge.
const ParallaxScale = 18.0

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Tracker records the last pointer sample. It does not smooth anything.
type Tracker struct {
	raw    Point
	seen   bool
	target Point
}

// Move records a pointer position for a viewport of the given size.
func (t *Tracker) Move(x, y, width, height float64) {
	t.raw = Point{X: x, Y: y}
	t.seen = true
	n := Normalize(t.raw, width, height)
	t.target = Point{X: n.X * ParallaxScale, Y: n.Y * ParallaxScale}
}

// Touch records the first touch point; an empty touch list is ignored.
func (t *Tracker) Touch(touches []Point, width, height float64) {
	if len(touches) == 0 {
		return
	}
	t.Move(touches[0].X, touches[0].Y, width, height)
}

// Raw returns the last sample and whether any sample has arrived.
func (t *Tracker) Raw() (Point, bool) {
	return t.raw, t.seen
}

// Target is the parallax offset the renderer should approach.
func (t *Tracker) Target() Point {
	return t.target
}

// Reset forgets all samples.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Normalize maps p into roughly [-1, 1] per axis. The result is not clamped;
// sizes below one pixel are treated as one.
func Normalize(p Point, width, height float64) Point {
	return Point{
		X: p.X/max(width, 1)*2 - 1,
		Y: p.Y/max(height, 1)*2 - 1,
	}
}
