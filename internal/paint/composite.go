package paint

// Composite combines a premultiplied source over a premultiplied destination.
// These are the canvas formulas; the GPU surface reproduces them with blend
// factors, exactly for Normal and Additive and for Multiply over an opaque
// destination.
func Composite(src, dst Premul, mode CompositeMode) Premul {
	switch mode {
	case CompositeAdditive:
		return Premul{
			R: src.R + dst.R - src.R*dst.R,
			G: src.G + dst.G - src.G*dst.G,
			B: src.B + dst.B - src.B*dst.B,
			A: src.A + dst.A - src.A*dst.A,
		}
	case CompositeMultiply:
		return Premul{
			R: src.R*(1-dst.A) + dst.R*(1-src.A) + src.R*dst.R,
			G: src.G*(1-dst.A) + dst.G*(1-src.A) + src.G*dst.G,
			B: src.B*(1-dst.A) + dst.B*(1-src.A) + src.B*dst.B,
			A: src.A + dst.A - src.A*dst.A,
		}
	default:
		return Premul{
			R: src.R + dst.R*(1-src.A),
			G: src.G + dst.G*(1-src.A),
			B: src.B + dst.B*(1-src.A),
			A: src.A + dst.A*(1-src.A),
		}
	}
}

// Scale multiplies every channel, used to apply partial pixel coverage.
func (p Premul) Scale(f float64) Premul {
	return Premul{R: p.R * f, G: p.G * f, B: p.B * f, A: p.A * f}
}
