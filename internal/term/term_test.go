package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/dotfield/internal/background"
	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func newSession(t *testing.T, screen tcell.Screen, flag theme.Flag) (*Session, *background.Renderer) {
	t.Helper()
	r, err := background.New(config.DefaultRender(), background.WithRand(constSource(0.5)))
	require.NoError(t, err)
	return New(screen, r, flag, nil), r
}

func TestStartMapsCellsToViewport(t *testing.T) {
	screen := newScreen(t, 40, 12)
	s, r := newSession(t, screen, theme.NewToggle(true))
	require.NoError(t, s.Start())
	defer r.Unmount()

	st := r.State()
	assert.True(t, st.Mounted)
	assert.Equal(t, 320.0, st.Width)
	assert.Equal(t, 192.0, st.Height)
	assert.Equal(t, Scale, st.Scale)
	assert.Equal(t, 40, s.raster.Bounds().Dx())
	assert.Equal(t, 24, s.raster.Bounds().Dy())
}

func TestFrameDrawsHalfBlocks(t *testing.T) {
	screen := newScreen(t, 20, 6)
	s, r := newSession(t, screen, theme.NewToggle(true))
	require.NoError(t, s.Start())
	defer r.Unmount()

	assert.Equal(t, 1, s.Frame())
	assert.Equal(t, uint64(1), s.Drawn())
	for _, pt := range [][2]int{{0, 0}, {19, 5}, {10, 3}} {
		mainc, _, _, _ := screen.GetContent(pt[0], pt[1])
		assert.Equal(t, upperHalf, mainc, "cell %v", pt)
	}
	assert.Equal(t, uint64(1), r.State().Frames)
}

func TestHandleEvent(t *testing.T) {
	screen := newScreen(t, 40, 12)
	flag := theme.NewToggle(true)
	s, r := newSession(t, screen, flag)
	require.NoError(t, s.Start())
	defer r.Unmount()

	assert.True(t, s.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)))
	st := r.State()
	assert.True(t, st.PointerSeen)
	assert.Equal(t, 84.0, st.Pointer.X)
	assert.Equal(t, 88.0, st.Pointer.Y)

	assert.True(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone)))
	assert.False(t, flag.Dark())

	assert.True(t, s.HandleEvent(tcell.NewEventResize(60, 20)))
	st = r.State()
	assert.Equal(t, 480.0, st.Width)
	assert.Equal(t, 320.0, st.Height)
	assert.Equal(t, 60, s.raster.Bounds().Dx())
	assert.Equal(t, 40, s.raster.Bounds().Dy())

	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestRunStopsOnQuitKey(t *testing.T) {
	screen := newScreen(t, 20, 6)
	s, r := newSession(t, screen, theme.NewToggle(false))
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.False(t, r.Mounted())
	assert.NoError(t, ctx.Err())
}

func TestRunStopsOnContext(t *testing.T) {
	screen := newScreen(t, 20, 6)
	s, r := newSession(t, screen, theme.NewToggle(true))

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.False(t, r.Mounted())
	assert.Positive(t, s.Drawn())
}

func TestChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want int32
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, channel(tt.in), "channel(%v)", tt.in)
	}
}
