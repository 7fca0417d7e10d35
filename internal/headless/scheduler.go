package headless

import "github.com/iburimskiy/dotfield/internal/background"

// Scheduler queues frame callbacks until Pump runs them. It counts requests
// and cancellations so tests can see exactly what a renderer scheduled.
type Scheduler struct {
	next    background.FrameHandle
	pending map[background.FrameHandle]func()
	order   []background.FrameHandle

	Requests int
	Cancels  int
}

var _ background.FrameScheduler = (*Scheduler)(nil)

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[background.FrameHandle]func())}
}

func (s *Scheduler) RequestFrame(fn func()) background.FrameHandle {
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	s.Requests++
	return s.next
}

func (s *Scheduler) CancelFrame(h background.FrameHandle) {
	if _, ok := s.pending[h]; ok {
		delete(s.pending, h)
		s.Cancels++
	}
}

// Pending is the number of callbacks waiting for the next frame.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Frame runs every callback pending at the time of the call; callbacks they
// request wait for the next Frame. It returns how many ran.
func (s *Scheduler) Frame() int {
	order := s.order
	s.order = nil
	ran := 0
	for _, h := range order {
		fn, ok := s.pending[h]
		if !ok {
			continue
		}
		delete(s.pending, h)
		fn()
		ran++
	}
	return ran
}

// Pump runs n frames.
func (s *Scheduler) Pump(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		ran += s.Frame()
	}
	return ran
}
