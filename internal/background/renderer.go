// Package background renders the animated dot field: a jittered grid that
// drifts with the pointer, a soft ambiance glow, and a spotlight that trails
// the cursor, in either a dark or a light theme.
package background

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/grid"
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/pointer"
	"github.com/iburimskiy/dotfield/internal/theme"
	"go.uber.org/zap"
)

var (
	// ErrSurfaceUnavailable means the host had nothing to draw on. The host
	// should keep running without a background.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
	ErrNotMounted         = errors.New("renderer not mounted")
)

// Option customises a Renderer.
type Option func(*Renderer)

// WithRand sets the jitter source, for deterministic grids.
func WithRand(src grid.Source) Option {
	return func(r *Renderer) { r.rng = src }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// Renderer owns one background instance. It is not safe for concurrent use;
// every method and host callback runs on the host's frame goroutine.
type Renderer struct {
	cfg config.Render
	rng grid.Source
	log *zap.Logger

	host     Host
	surface  paint.Surface
	observer *theme.Observer
	loop     *Loop
	removers []func()
	mounted  bool
	epoch    uint64

	width, height, scale float64
	dots                 []grid.Dot
	tracker              pointer.Tracker
	parallax             pointer.Point
	spot                 pointer.Point
	frames               uint64
	circles              []paint.Circle
}

// New validates cfg and returns an unmounted renderer.
func New(cfg config.Render, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{cfg: cfg, scale: 1}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r, nil
}

// Config returns the configuration the renderer was built with.
func (r *Renderer) Config() config.Render { return r.cfg }

// Mounted reports whether the renderer is live.
func (r *Renderer) Mounted() bool { return r.mounted }

// Mount attaches to host and starts the frame loop. Mounting a live renderer
// unmounts it first. If the host has no surface, Mount returns an error
// wrapping ErrSurfaceUnavailable and the renderer stays unmounted.
func (r *Renderer) Mount(host Host, sched FrameScheduler, flag theme.Flag) error {
	if r.mounted {
		r.Unmount()
	}

	surface, err := host.Surface()
	if err == nil && surface == nil {
		err = errors.New("host returned no surface")
	}
	if err != nil {
		r.log.Warn("background disabled", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	r.epoch++
	epoch := r.epoch
	live := func() bool { return r.mounted && r.epoch == epoch }

	r.host = host
	r.surface = surface
	r.tracker.Reset()
	r.parallax = pointer.Point{}
	r.frames = 0
	r.resize()
	r.spot = SpotlightRest(r.width, r.height)

	r.observer = theme.Observe(flag, func(dark bool) {
		r.log.Debug("theme changed", zap.String("theme", theme.Name(dark)))
	})

	r.removers = append(r.removers[:0],
		host.OnPointerMove(func(x, y float64) {
			if live() {
				r.tracker.Move(x, y, r.width, r.height)
			}
		}),
		host.OnTouchMove(func(touches []pointer.Point) {
			if live() {
				r.tracker.Touch(touches, r.width, r.height)
			}
		}),
		host.OnResize(func() {
			if live() {
				r.resize()
			}
		}),
	)

	r.loop = NewLoop(sched, r.step)
	r.mounted = true
	r.loop.Start()

	r.log.Info("background mounted",
		zap.Float64("width", r.width),
		zap.Float64("height", r.height),
		zap.Float64("scale", r.scale),
		zap.Int("dots", len(r.dots)),
		zap.String("theme", theme.Name(r.observer.Dark())))
	return nil
}

// Resize re-reads the host viewport and rebuilds the grid. Hosts that
// deliver OnResize callbacks do not need to call it.
func (r *Renderer) Resize() error {
	if !r.mounted {
		return ErrNotMounted
	}
	r.resize()
	return nil
}

func (r *Renderer) resize() {
	w, h := r.host.Size()
	scale := r.host.DeviceScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	r.width, r.height, r.scale = max(w, 0), max(h, 0), scale
	r.surface.Resize(r.width, r.height, r.scale)
	r.dots = grid.Build(r.width, r.height, r.cfg.Spacing, r.cfg.DotRadius, r.rng)
	r.log.Debug("background resized",
		zap.Float64("width", r.width),
		zap.Float64("height", r.height),
		zap.Int("dots", len(r.dots)))
}

// Unmount removes listeners, stops observing the theme, cancels the pending
// frame and releases the surface. It is safe to call from inside a frame and
// more than once.
func (r *Renderer) Unmount() {
	if !r.mounted {
		return
	}
	r.mounted = false
	r.epoch++

	for i := len(r.removers) - 1; i >= 0; i-- {
		r.removers[i]()
	}
	r.removers = r.removers[:0]
	r.observer.Stop()
	r.loop.Stop()
	r.surface = nil
	r.host = nil

	r.log.Info("background unmounted", zap.Uint64("frames", r.frames))
}

// State is a snapshot of the renderer for inspection.
type State struct {
	Mounted       bool
	Width, Height float64
	Scale         float64
	Dots          []grid.Dot

	// Pointer is the last pointer sample, or the viewport center before one
	// arrives.
	Pointer        pointer.Point
	PointerSeen    bool
	ParallaxTarget pointer.Point
	Parallax       pointer.Point
	Spotlight      pointer.Point
	Dark           bool
	Frames         uint64
	Pending        FrameHandle
}

func (r *Renderer) State() State {
	raw, seen := r.tracker.Raw()
	if !seen {
		raw = pointer.Point{X: r.width / 2, Y: r.height / 2}
	}
	s := State{
		Mounted:        r.mounted,
		Width:          r.width,
		Height:         r.height,
		Scale:          r.scale,
		Dots:           slices.Clone(r.dots),
		Pointer:        raw,
		PointerSeen:    seen,
		ParallaxTarget: r.tracker.Target(),
		Parallax:       r.parallax,
		Spotlight:      r.spot,
		Frames:         r.frames,
	}
	if r.observer != nil {
		s.Dark = r.observer.Dark()
	}
	if r.loop != nil && r.loop.Running() {
		s.Pending = r.loop.Handle()
	}
	return s
}
