// Package headless provides a scripted host and a manually pumped frame
// scheduler, for rendering without a window.
package headless

import (
	"errors"

	"github.com/iburimskiy/dotfield/internal/background"
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/pointer"
)

// ErrNoSurface is returned by Surface when the host was built without one.
var ErrNoSurface = errors.New("headless: no surface")

type listeners[F any] struct {
	next int
	fns  map[int]F
}

func (l *listeners[F]) add(fn F) func() {
	if l.fns == nil {
		l.fns = make(map[int]F)
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

// Host is a background.Host driven by method calls.
type Host struct {
	width, height, scale float64
	surface              paint.Surface

	pointer listeners[func(x, y float64)]
	touch   listeners[func([]pointer.Point)]
	resize  listeners[func()]
}

var _ background.Host = (*Host)(nil)

// NewHost returns a host of the given logical size. surface may be nil to
// model a host with nothing to draw on.
func NewHost(width, height, scale float64, surface paint.Surface) *Host {
	return &Host{width: width, height: height, scale: scale, surface: surface}
}

func (h *Host) Size() (float64, float64) { return h.width, h.height }

func (h *Host) DeviceScaleFactor() float64 { return h.scale }

func (h *Host) Surface() (paint.Surface, error) {
	if h.surface == nil {
		return nil, ErrNoSurface
	}
	return h.surface, nil
}

func (h *Host) OnPointerMove(fn func(x, y float64)) func() { return h.pointer.add(fn) }

func (h *Host) OnTouchMove(fn func([]pointer.Point)) func() { return h.touch.add(fn) }

func (h *Host) OnResize(fn func()) func() { return h.resize.add(fn) }

// Listeners counts registered callbacks of every kind.
func (h *Host) Listeners() int {
	return len(h.pointer.fns) + len(h.touch.fns) + len(h.resize.fns)
}

// Move delivers a pointer move.
func (h *Host) Move(x, y float64) {
	for _, fn := range h.pointer.fns {
		fn(x, y)
	}
}

// Touch delivers a touch move.
func (h *Host) Touch(touches ...pointer.Point) {
	for _, fn := range h.touch.fns {
		fn(touches)
	}
}

// SetSize changes the viewport and delivers a resize.
func (h *Host) SetSize(width, height, scale float64) {
	h.width, h.height, h.scale = width, height, scale
	for _, fn := range h.resize.fns {
		fn()
	}
}
