package headless

import (
	"math"

	"github.com/iburimskiy/dotfield/internal/background"
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/pointer"
	"github.com/iburimskiy/dotfield/internal/theme"
)

// Path places the pointer before frame i of n.
type Path func(i, n int, width, height float64) pointer.Point

// Sweep moves the pointer along the upper half of an ellipse, from the left
// of the viewport to the right, arriving on the last frame.
func Sweep(i, n int, width, height float64) pointer.Point {
	t := 1.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	a := math.Pi * (1 - t)
	return pointer.Point{
		X: width * (0.5 + 0.35*math.Cos(a)),
		Y: height * (0.55 - 0.3*math.Sin(a)),
	}
}

// Script renders a fixed number of frames on a headless host.
type Script struct {
	Width, Height float64
	Scale         float64
	Frames        int
	// Path is optional; without it the pointer never moves.
	Path Path
}

// Run mounts r on surface, pumps the frames and unmounts. It returns the
// renderer state after the last frame.
func (s Script) Run(r *background.Renderer, flag theme.Flag, surface paint.Surface) (background.State, error) {
	host := NewHost(s.Width, s.Height, s.Scale, surface)
	sched := NewScheduler()
	if err := r.Mount(host, sched, flag); err != nil {
		return background.State{}, err
	}
	defer r.Unmount()

	for i := 0; i < s.Frames; i++ {
		if s.Path != nil {
			p := s.Path(i, s.Frames, s.Width, s.Height)
			host.Move(p.X, p.Y)
		}
		sched.Frame()
	}
	return r.State(), nil
}
