// Package game hosts the background renderer in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/dotfield/internal/background"
	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/pointer"
	"github.com/iburimskiy/dotfield/internal/theme"
	"go.uber.org/zap"
)

type pendingFrame struct {
	handle background.FrameHandle
	fn     func()
}

// Game is an ebiten.Game that is also the renderer's Host and
// FrameScheduler: input is polled in Update and dispatched to listeners,
// scheduled frames run in Draw.
type Game struct {
	renderer *background.Renderer
	flag     theme.Flag
	log      *zap.Logger

	surface    *gpuSurface
	surfaceErr error
	mounted    bool

	width, height float64
	scale         float64
	resizePending bool

	pointerFns map[int]func(x, y float64)
	touchFns   map[int]func([]pointer.Point)
	resizeFns  map[int]func()
	nextID     int

	cursor      image.Point
	cursorKnown bool
	touchIDs    []ebiten.TouchID
	touches     []pointer.Point

	frames     []pendingFrame
	inFlight   []pendingFrame
	nextHandle background.FrameHandle

	tap     *frameTap
	started time.Time
	debug   bool
}

var (
	_ ebiten.Game                = (*Game)(nil)
	_ background.Host            = (*Game)(nil)
	_ background.FrameScheduler = (*Game)(nil)
)

func NewGame(r *background.Renderer, flag theme.Flag, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		renderer:   r,
		flag:       flag,
		log:        log,
		scale:      1,
		pointerFns: map[int]func(x, y float64){},
		touchFns:   map[int]func([]pointer.Point){},
		resizeFns:  map[int]func(){},
		tap:        newFrameTap(config.FrameRingSize),
		started:    time.Now(),
	}
	g.surface, g.surfaceErr = newGPUSurface()
	if g.surfaceErr != nil {
		g.log.Error("gradient shader failed to compile", zap.Error(g.surfaceErr))
	}
	return g
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, win config.Window) error {
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title + " - t: theme, F3: stats, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if win.Passthrough {
		ebiten.SetWindowMousePassthrough(true)
	}
	defer g.renderer.Unmount()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Size() (float64, float64) { return g.width, g.height }

func (g *Game) DeviceScaleFactor() float64 { return g.scale }

func (g *Game) Surface() (paint.Surface, error) {
	if g.surfaceErr != nil {
		return nil, g.surfaceErr
	}
	return g.surface, nil
}

func (g *Game) OnPointerMove(fn func(x, y float64)) func() {
	id := g.id()
	g.pointerFns[id] = fn
	return func() { delete(g.pointerFns, id) }
}

func (g *Game) OnTouchMove(fn func([]pointer.Point)) func() {
	id := g.id()
	g.touchFns[id] = fn
	return func() { delete(g.touchFns, id) }
}

func (g *Game) OnResize(fn func()) func() {
	id := g.id()
	g.resizeFns[id] = fn
	return func() { delete(g.resizeFns, id) }
}

func (g *Game) id() int {
	g.nextID++
	return g.nextID
}

func (g *Game) RequestFrame(fn func()) background.FrameHandle {
	g.nextHandle++
	g.frames = append(g.frames, pendingFrame{handle: g.nextHandle, fn: fn})
	return g.nextHandle
}

func (g *Game) CancelFrame(h background.FrameHandle) {
	for i, f := range g.frames {
		if f.handle == h {
			g.frames = append(g.frames[:i], g.frames[i+1:]...)
			return
		}
	}
	for i := range g.inFlight {
		if g.inFlight[i].handle == h {
			g.inFlight[i].fn = nil
		}
	}
}

func (g *Game) Update() error {
	if !g.mounted && g.width > 0 {
		g.mounted = true
		if err := g.renderer.Mount(g, g, g.flag); err != nil {
			g.log.Warn("running without background", zap.Error(err))
		}
	}

	if g.resizePending {
		g.resizePending = false
		for _, fn := range g.resizeFns {
			fn()
		}
	}

	g.pollPointer()
	g.pollTouches()

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if err := theme.Flip(g.flag); err != nil {
			g.log.Warn("theme toggle failed", zap.Error(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.renderer.Unmount()
		return ebiten.Termination
	}
	return nil
}

// pollPointer dispatches only real movement. The first position ebiten
// reports is a baseline, not a move, so the spotlight stays at rest until the
// cursor actually moves.
func (g *Game) pollPointer() {
	x, y := ebiten.CursorPosition()
	p := image.Pt(x, y)
	if !g.cursorKnown {
		g.cursor, g.cursorKnown = p, true
		return
	}
	if p == g.cursor {
		return
	}
	g.cursor = p
	lx, ly := float64(x)/g.scale, float64(y)/g.scale
	for _, fn := range g.pointerFns {
		fn(lx, ly)
	}
}

func (g *Game) pollTouches() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) == 0 {
		g.touches = g.touches[:0]
		return
	}
	changed := len(g.touchIDs) != len(g.touches)
	next := make([]pointer.Point, 0, len(g.touchIDs))
	for i, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		p := pointer.Point{X: float64(x) / g.scale, Y: float64(y) / g.scale}
		if !changed && g.touches[i] != p {
			changed = true
		}
		next = append(next, p)
	}
	g.touches = next
	if !changed {
		return
	}
	for _, fn := range g.touchFns {
		fn(next)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.tap.mark(time.Now())
	if g.surface != nil {
		g.surface.target = screen
	}

	g.inFlight, g.frames = g.frames, nil
	for i := range g.inFlight {
		if fn := g.inFlight[i].fn; fn != nil {
			fn()
		}
	}
	g.inFlight = nil

	if g.debug {
		ebitenutil.DebugPrintAt(screen, g.stats(), 12, 12)
	}
}

func (g *Game) stats() string {
	st := g.renderer.State()
	return fmt.Sprintf("%.0f fps  %d dots  %s  %.0fx%.0f@%.2g  %s",
		g.tap.fps(), len(st.Dots), theme.Name(st.Dark),
		st.Width, st.Height, st.Scale, formatDuration(time.Since(g.started)))
}

// Layout reports a backing store of round(logical * device scale) so
// strokes stay crisp on high-density displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.width || h != g.height || scale != g.scale {
		g.width, g.height, g.scale = w, h, scale
		g.resizePending = g.mounted
	}
	pw, ph := paint.BackingSize(w, h, scale)
	return max(pw, 1), max(ph, 1)
}
