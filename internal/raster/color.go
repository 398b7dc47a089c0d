package raster

// Color is an 8-bit RGBA value with straight (non-premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

var Transparent = Color{}

func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

func Clamp8(x int) uint8 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Mix interpolates each channel of c1 towards c2, truncating towards zero.
func Mix(c1, c2 Color, t float64) Color {
	return Color{
		R: Clamp8(int(Lerp(float64(c1.R), float64(c2.R), t))),
		G: Clamp8(int(Lerp(float64(c1.G), float64(c2.G), t))),
		B: Clamp8(int(Lerp(float64(c1.B), float64(c2.B), t))),
		A: Clamp8(int(Lerp(float64(c1.A), float64(c2.A), t))),
	}
}

// Over composites src over dst. Both colors use straight alpha.
func Over(dst, src Color) Color {
	sa := float64(src.A) / 255.0
	da := float64(dst.A) / 255.0
	outA := sa + da*(1.0-sa)
	if outA <= 1e-9 {
		return Transparent
	}
	blend := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1.0-sa)) / outA
		return Clamp8(int(v + 0.5))
	}
	return Color{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: Clamp8(int(outA*255 + 0.5)),
	}
}
