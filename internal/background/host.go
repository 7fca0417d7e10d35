package background

import (
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/pointer"
)

// Host is the environment a Renderer is mounted into. All callbacks must be
// delivered on the goroutine that drives the FrameScheduler.
type Host interface {
	// Size is the logical viewport size.
	Size() (width, height float64)
	// DeviceScaleFactor is the ratio of physical to logical pixels.
	DeviceScaleFactor() float64
	// Surface returns the drawing target, or an error if none is available.
	Surface() (paint.Surface, error)

	OnPointerMove(fn func(x, y float64)) (remove func())
	OnTouchMove(fn func(touches []pointer.Point)) (remove func())
	OnResize(fn func()) (remove func())
}

// FrameHandle identifies one scheduled frame callback.
type FrameHandle uint64

// FrameScheduler runs callbacks once per display frame, like
// requestAnimationFrame. A cancelled handle's callback never runs; cancelling
// a handle that already ran is a no-op.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}
