package background

// Loop runs step once per frame until stopped. At most one frame is pending
// per Loop: a tick belonging to an earlier Start is dropped, so a Stop/Start
// from inside step cannot leave two chains running.
type Loop struct {
	sched   FrameScheduler
	step    func()
	handle  FrameHandle
	gen     uint64
	running bool
}

func NewLoop(sched FrameScheduler, step func()) *Loop {
	return &Loop{sched: sched, step: step}
}

// Start requests the first frame. It does nothing if already running.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.gen++
	l.request()
}

// Stop cancels the pending frame.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.gen++
	l.sched.CancelFrame(l.handle)
}

func (l *Loop) Running() bool { return l.running }

// Handle is the most recently requested frame.
func (l *Loop) Handle() FrameHandle { return l.handle }

func (l *Loop) request() {
	gen := l.gen
	l.handle = l.sched.RequestFrame(func() { l.tick(gen) })
}

func (l *Loop) tick(gen uint64) {
	if !l.running || gen != l.gen {
		return
	}
	l.step()
	if l.running && gen == l.gen {
		l.request()
	}
}
