package paint

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Raster is a CPU Surface. Pixels are kept as premultiplied floats so repeated
// low-alpha compositing does not band; Image converts on demand.
type Raster struct {
	width, height float64
	scale         float64
	pw, ph        int
	pix           []Premul

	ras  *vector.Rasterizer
	mask *image.Alpha
}

// NewRaster returns an empty raster. Call Resize before painting.
func NewRaster() *Raster {
	return &Raster{scale: 1, ras: vector.NewRasterizer(0, 0)}
}

func (r *Raster) Resize(width, height, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	r.width, r.height, r.scale = width, height, scale
	r.pw, r.ph = BackingSize(width, height, scale)
	r.pix = make([]Premul, r.pw*r.ph)
	r.mask = image.NewAlpha(image.Rect(0, 0, r.pw, r.ph))
	r.ras.Reset(r.pw, r.ph)
}

// Bounds is the physical pixel rectangle.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.pw, r.ph)
}

func (r *Raster) Clear() {
	clear(r.pix)
}

func (r *Raster) FillGradient(g RadialGradient, mode CompositeMode) {
	if len(g.Stops) == 0 {
		return
	}
	for py := 0; py < r.ph; py++ {
		y := (float64(py) + 0.5) / r.scale
		row := r.pix[py*r.pw : (py+1)*r.pw]
		for px := range row {
			x := (float64(px) + 0.5) / r.scale
			src := g.At(x, y)
			if src.A == 0 {
				continue
			}
			row[px] = Composite(src, row[px], mode)
		}
	}
}

func (r *Raster) FillCircles(circles []Circle, c RGB, alpha float64, mode CompositeMode) {
	if len(circles) == 0 || r.pw == 0 || r.ph == 0 {
		return
	}
	r.ras.Reset(r.pw, r.ph)
	s := float32(r.scale)
	for _, ci := range circles {
		addCircle(r.ras, float32(ci.X)*s, float32(ci.Y)*s, float32(ci.R)*s)
	}
	r.ras.DrawOp = draw.Src
	r.ras.Draw(r.mask, r.mask.Bounds(), image.Opaque, image.Point{})

	src := ColorStop{Color: c, Alpha: alpha}.Premultiplied()
	for i, cov := range r.mask.Pix {
		if cov == 0 {
			continue
		}
		r.pix[i] = Composite(src.Scale(float64(cov)/255), r.pix[i], mode)
	}
}

// At returns the premultiplied pixel at physical coordinates.
func (r *Raster) At(px, py int) Premul {
	if px < 0 || py < 0 || px >= r.pw || py >= r.ph {
		return Premul{}
	}
	return r.pix[py*r.pw+px]
}

// Image converts the raster to an 8-bit premultiplied image.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	for i, p := range r.pix {
		o := i * 4
		img.Pix[o+0] = to8(p.R)
		img.Pix[o+1] = to8(p.G)
		img.Pix[o+2] = to8(p.B)
		img.Pix[o+3] = to8(p.A)
	}
	return img
}

func to8(v float64) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}

// addCircle approximates a circle with four cubic Béziers.
func addCircle(r *vector.Rasterizer, cx, cy, radius float32) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}
