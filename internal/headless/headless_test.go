package headless

import (
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/dotfield/internal/background"
	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/pointer"
	"github.com/iburimskiy/dotfield/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsOnlyWhatWasPending(t *testing.T) {
	s := NewScheduler()
	var ran []string
	s.RequestFrame(func() {
		ran = append(ran, "a")
		s.RequestFrame(func() { ran = append(ran, "c") })
	})
	b := s.RequestFrame(func() { ran = append(ran, "b") })
	s.CancelFrame(b)
	s.CancelFrame(b)
	s.CancelFrame(999)

	assert.Equal(t, 1, s.Frame())
	assert.Equal(t, []string{"a"}, ran)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, 1, s.Cancels)

	assert.Equal(t, 1, s.Pump(3))
	assert.Equal(t, []string{"a", "c"}, ran)
	assert.Equal(t, 3, s.Requests)
}

func TestSchedulerCancelDuringFrame(t *testing.T) {
	s := NewScheduler()
	var second background.FrameHandle
	ran := 0
	s.RequestFrame(func() { s.CancelFrame(second) })
	second = s.RequestFrame(func() { ran++ })

	assert.Equal(t, 1, s.Frame())
	assert.Zero(t, ran)
}

func TestHostListeners(t *testing.T) {
	h := NewHost(100, 50, 2, &paint.Recorder{})
	w, hh := h.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, hh)
	assert.Equal(t, 2.0, h.DeviceScaleFactor())

	var moves []pointer.Point
	var touches int
	resizes := 0
	offMove := h.OnPointerMove(func(x, y float64) { moves = append(moves, pointer.Point{X: x, Y: y}) })
	offTouch := h.OnTouchMove(func(p []pointer.Point) { touches += len(p) })
	offResize := h.OnResize(func() { resizes++ })
	assert.Equal(t, 3, h.Listeners())

	h.Move(1, 2)
	h.Touch(pointer.Point{}, pointer.Point{})
	h.SetSize(200, 100, 1)
	assert.Equal(t, []pointer.Point{{X: 1, Y: 2}}, moves)
	assert.Equal(t, 2, touches)
	assert.Equal(t, 1, resizes)
	w, _ = h.Size()
	assert.Equal(t, 200.0, w)

	offMove()
	offTouch()
	offResize()
	assert.Equal(t, 0, h.Listeners())
	h.Move(3, 4)
	assert.Len(t, moves, 1)

	_, err := NewHost(1, 1, 1, nil).Surface()
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestSweep(t *testing.T) {
	start := Sweep(0, 10, 1000, 500)
	assert.InDelta(t, 150, start.X, 1e-9)
	assert.InDelta(t, 275, start.Y, 1e-9)

	end := Sweep(9, 10, 1000, 500)
	assert.InDelta(t, 850, end.X, 1e-9)
	assert.InDelta(t, 275, end.Y, 1e-9)

	mid := Sweep(1, 3, 1000, 500)
	assert.InDelta(t, 500, mid.X, 1e-9)
	assert.InDelta(t, 125, mid.Y, 1e-9)

	assert.Equal(t, end, Sweep(0, 1, 1000, 500), "a single frame lands on the end")
}

func TestScriptRun(t *testing.T) {
	r, err := background.New(config.DefaultRender(), background.WithRand(rand.New(rand.NewPCG(3, 3))))
	require.NoError(t, err)
	raster := paint.NewRaster()

	s := Script{Width: 320, Height: 200, Scale: 1, Frames: 12, Path: Sweep}
	st, err := s.Run(r, theme.NewToggle(true), raster)
	require.NoError(t, err)

	assert.False(t, r.Mounted(), "Run unmounts")
	assert.Equal(t, uint64(12), st.Frames)
	assert.True(t, st.PointerSeen)
	assert.Equal(t, Sweep(11, 12, 320, 200), st.Pointer)
	assert.Equal(t, 320, raster.Bounds().Dx())

	lit := 0
	b := raster.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if raster.At(x, y).A > 0 {
				lit++
			}
		}
	}
	assert.Equal(t, b.Dx()*b.Dy(), lit, "the base gradient covers every pixel")
}

func TestScriptRunStill(t *testing.T) {
	r, err := background.New(config.DefaultRender())
	require.NoError(t, err)
	rec := &paint.Recorder{}

	st, err := Script{Width: 100, Height: 100, Scale: 1, Frames: 2}.Run(r, theme.NewToggle(false), rec)
	require.NoError(t, err)
	assert.False(t, st.PointerSeen)
	assert.Equal(t, paint.CompositeMultiply, rec.Frame()[3].Mode)

	_, err = Script{Width: 100, Height: 100, Scale: 1, Frames: 1}.Run(r, theme.NewToggle(true), nil)
	assert.ErrorIs(t, err, background.ErrSurfaceUnavailable)
}
