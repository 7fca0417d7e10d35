// Package term hosts the background in a terminal. Every cell shows two
// stacked pixels as an upper half block: the foreground is the top pixel and
// the background the bottom one.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/dotfield/internal/background"
	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/headless"
	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/iburimskiy/dotfield/internal/theme"
	"go.uber.org/zap"
)

// FrameInterval is the tick between frames, about 60 per second.
const FrameInterval = 16 * time.Millisecond

const upperHalf = '▀'

// Session runs one renderer on a tcell screen. The screen belongs to the
// caller, who must Init it before Start and Fini it after Run returns.
type Session struct {
	screen   tcell.Screen
	renderer *background.Renderer
	flag     theme.Flag
	log      *zap.Logger

	raster     *paint.Raster
	host       *headless.Host
	sched      *headless.Scheduler
	cols, rows int
	drawn      uint64
}

func New(screen tcell.Screen, r *background.Renderer, flag theme.Flag, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		screen:   screen,
		renderer: r,
		flag:     flag,
		log:      log,
		raster:   paint.NewRaster(),
		sched:    headless.NewScheduler(),
	}
}

// Logical converts a cell grid to the logical viewport the renderer sees.
func Logical(cols, rows int) (width, height float64) {
	return float64(cols * config.CellWidth), float64(rows * config.CellHeight)
}

// Scale maps a cell width of logical pixels onto one backing pixel, and a
// cell height onto two.
const Scale = 1.0 / config.CellWidth

// Start enables mouse reporting and mounts the renderer.
func (s *Session) Start() error {
	s.screen.EnableMouse(tcell.MouseMotionEvents)
	s.screen.HideCursor()
	s.cols, s.rows = s.screen.Size()
	w, h := Logical(s.cols, s.rows)
	s.host = headless.NewHost(w, h, Scale, s.raster)
	return s.renderer.Mount(s.host, s.sched, s.flag)
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (s *Session) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 't', 'T':
				if err := theme.Flip(s.flag); err != nil {
					s.log.Warn("theme toggle failed", zap.Error(err))
				}
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		s.host.Move((float64(x)+0.5)*config.CellWidth, (float64(y)+0.5)*config.CellHeight)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols == s.cols && rows == s.rows {
			return true
		}
		s.cols, s.rows = cols, rows
		w, h := Logical(cols, rows)
		s.host.SetSize(w, h, Scale)
		s.screen.Sync()
		s.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
	}
	return true
}

// Frame runs pending frame callbacks and, if any ran, shows the result.
func (s *Session) Frame() int {
	ran := s.sched.Frame()
	if ran > 0 {
		s.draw()
	}
	return ran
}

// Drawn counts frames pushed to the screen.
func (s *Session) Drawn() uint64 { return s.drawn }

func (s *Session) draw() {
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			st := tcell.StyleDefault.
				Foreground(cellColor(s.raster.At(x, 2*y))).
				Background(cellColor(s.raster.At(x, 2*y+1)))
			s.screen.SetContent(x, y, upperHalf, nil, st)
		}
	}
	s.screen.Show()
	s.drawn++
}

// cellColor flattens a premultiplied pixel onto the black terminal.
func cellColor(p paint.Premul) tcell.Color {
	return tcell.NewRGBColor(channel(p.R), channel(p.G), channel(p.B))
}

func channel(v float64) int32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int32(v*255 + 0.5)
}

// Run starts the session and ticks frames until the user quits or ctx is
// done. The event goroutine ends when the caller finalizes the screen.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.renderer.Unmount()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !s.HandleEvent(ev) {
				s.log.Info("terminal session ended", zap.Uint64("frames", s.drawn))
				return nil
			}
		case <-ticker.C:
			s.Frame()
		}
	}
}
