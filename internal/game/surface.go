package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/dotfield/internal/paint"
)

// Circles per DrawTriangles call; keeps vertex indices inside uint16.
const circleBatch = 512

var (
	blendScreen = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
	// Exact multiply over an opaque destination, which the base gradient
	// always leaves behind.
	blendMultiply = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}

	colorUniforms = [paint.MaxStops]string{"Color0", "Color1", "Color2", "Color3"}

	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func blendFor(mode paint.CompositeMode) ebiten.Blend {
	switch mode {
	case paint.CompositeAdditive:
		return blendScreen
	case paint.CompositeMultiply:
		return blendMultiply
	default:
		return ebiten.BlendSourceOver
	}
}

// gpuSurface draws onto the screen image handed to Draw. Its backing store is
// the screen itself, sized by Layout.
type gpuSurface struct {
	target *ebiten.Image
	shader *ebiten.Shader
	scale  float32

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

func newGPUSurface() (*gpuSurface, error) {
	shader, err := ebiten.NewShader([]byte(gradientShaderSrc))
	if err != nil {
		return nil, err
	}
	return &gpuSurface{shader: shader, scale: 1}, nil
}

func (s *gpuSurface) Resize(width, height, scale float64) {
	s.scale = float32(scale)
}

func (s *gpuSurface) Clear() {
	if s.target != nil {
		s.target.Clear()
	}
}

func (s *gpuSurface) FillGradient(g paint.RadialGradient, mode paint.CompositeMode) {
	if s.target == nil || len(g.Stops) == 0 {
		return
	}
	sc := s.scale
	stops := g.Padded()
	uniforms := map[string]any{
		"Center0": []float32{float32(g.X0) * sc, float32(g.Y0) * sc},
		"Radius0": float32(g.R0) * sc,
		"Center1": []float32{float32(g.X1) * sc, float32(g.Y1) * sc},
		"Radius1": float32(g.R1) * sc,
		"Offsets": []float32{
			float32(stops[0].Offset), float32(stops[1].Offset),
			float32(stops[2].Offset), float32(stops[3].Offset),
		},
	}
	for i, st := range stops {
		p := st.Premultiplied()
		uniforms[colorUniforms[i]] = []float32{float32(p.R), float32(p.G), float32(p.B), float32(p.A)}
	}

	b := s.target.Bounds()
	op := &ebiten.DrawRectShaderOptions{}
	op.Uniforms = uniforms
	op.Blend = blendFor(mode)
	s.target.DrawRectShader(b.Dx(), b.Dy(), s.shader, op)
}

func (s *gpuSurface) FillCircles(circles []paint.Circle, c paint.RGB, alpha float64, mode paint.CompositeMode) {
	if s.target == nil || len(circles) == 0 {
		return
	}
	sc := s.scale
	if mode == paint.CompositeNormal {
		clr := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(paint.Clamp01(alpha) * 255))}
		for _, ci := range circles {
			vector.DrawFilledCircle(s.target, float32(ci.X)*sc, float32(ci.Y)*sc, float32(ci.R)*sc, clr, true)
		}
		return
	}

	for start := 0; start < len(circles); start += circleBatch {
		end := min(start+circleBatch, len(circles))
		s.path = vector.Path{}
		for _, ci := range circles[start:end] {
			x, y, r := float32(ci.X)*sc, float32(ci.Y)*sc, float32(ci.R)*sc
			s.path.MoveTo(x+r, y)
			s.path.Arc(x, y, r, 0, 2*math.Pi, vector.Clockwise)
			s.path.Close()
		}
		s.vertices, s.indices = s.path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
		for i := range s.vertices {
			s.vertices[i].SrcX = 1
			s.vertices[i].SrcY = 1
			s.vertices[i].ColorR = float32(c.R) / 255
			s.vertices[i].ColorG = float32(c.G) / 255
			s.vertices[i].ColorB = float32(c.B) / 255
			s.vertices[i].ColorA = float32(paint.Clamp01(alpha))
		}
		op := &ebiten.DrawTrianglesOptions{}
		op.FillRule = ebiten.NonZero
		op.AntiAlias = true
		op.Blend = blendFor(mode)
		s.target.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
	}
}
