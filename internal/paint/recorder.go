package paint

// OpKind identifies a recorded paint call.
type OpKind int

const (
	OpResize OpKind = iota
	OpClear
	OpGradient
	OpCircles
)

func (k OpKind) String() string {
	switch k {
	case OpResize:
		return "resize"
	case OpClear:
		return "clear"
	case OpGradient:
		return "gradient"
	case OpCircles:
		return "circles"
	default:
		return "unknown"
	}
}

// Op is one recorded call.
type Op struct {
	Kind     OpKind
	Mode     CompositeMode
	Gradient RadialGradient
	Circles  []Circle
	Color    RGB
	Alpha    float64

	Width, Height, Scale float64
}

// Recorder is a Surface that remembers every call instead of drawing.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Resize(width, height, scale float64) {
	r.Ops = append(r.Ops, Op{Kind: OpResize, Width: width, Height: height, Scale: scale})
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillGradient(g RadialGradient, mode CompositeMode) {
	g.Stops = append([]ColorStop(nil), g.Stops...)
	r.Ops = append(r.Ops, Op{Kind: OpGradient, Mode: mode, Gradient: g})
}

func (r *Recorder) FillCircles(circles []Circle, c RGB, alpha float64, mode CompositeMode) {
	r.Ops = append(r.Ops, Op{
		Kind:    OpCircles,
		Mode:    mode,
		Circles: append([]Circle(nil), circles...),
		Color:   c,
		Alpha:   alpha,
	})
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Frame returns the ops since the most recent Clear, inclusive.
func (r *Recorder) Frame() []Op {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if r.Ops[i].Kind == OpClear {
			return r.Ops[i:]
		}
	}
	return nil
}
