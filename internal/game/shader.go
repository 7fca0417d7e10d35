package game

// gradientShaderSrc fills a two-circle radial gradient. Stop colors arrive
// premultiplied; Offsets holds the four stop positions in ascending order.
const gradientShaderSrc = `//kage:unit pixels

package main

var Center0 vec2
var Radius0 float
var Center1 vec2
var Radius1 float
var Offsets vec4
var Color0 vec4
var Color1 vec4
var Color2 vec4
var Color3 vec4

func ramp(t float) vec4 {
	if t <= Offsets.x {
		return Color0
	}
	if t <= Offsets.y {
		return mix(Color0, Color1, (t-Offsets.x)/max(Offsets.y-Offsets.x, 0.000001))
	}
	if t <= Offsets.z {
		return mix(Color1, Color2, (t-Offsets.y)/max(Offsets.z-Offsets.y, 0.000001))
	}
	if t <= Offsets.w {
		return mix(Color2, Color3, (t-Offsets.z)/max(Offsets.w-Offsets.z, 0.000001))
	}
	return Color3
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	cd := Center1 - Center0
	dr := Radius1 - Radius0
	pd := dstPos.xy - Center0
	a := dot(cd, cd) - dr*dr
	b := dot(pd, cd) + Radius0*dr
	c := dot(pd, pd) - Radius0*Radius0

	if abs(a) < 0.000001 {
		if abs(b) < 0.000001 {
			return vec4(0)
		}
		t := c / (2.0 * b)
		if Radius0+t*dr < 0.0 {
			return vec4(0)
		}
		return ramp(t)
	}

	disc := b*b - a*c
	if disc < 0.0 {
		return vec4(0)
	}
	s := sqrt(disc)
	hi := max((b+s)/a, (b-s)/a)
	lo := min((b+s)/a, (b-s)/a)
	if Radius0+hi*dr >= 0.0 {
		return ramp(hi)
	}
	if Radius0+lo*dr >= 0.0 {
		return ramp(lo)
	}
	return vec4(0)
}
`
