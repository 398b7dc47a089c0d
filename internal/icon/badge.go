package icon

import "favicon-gen/internal/raster"

const (
	badgeTop       = "top"
	badgeBottom    = "bottom"
	badgeMark      = "mark"
	badgeGlow      = "glow"
	badgeHighlight = "highlight"
)

func badgePalette() Palette {
	return Palette{
		badgeTop:       raster.RGBA(16, 27, 68, 255),
		badgeBottom:    raster.RGBA(52, 211, 153, 255),
		badgeMark:      raster.RGBA(255, 255, 255, 235),
		badgeGlow:      raster.RGBA(255, 255, 255, 55),
		badgeHighlight: raster.RGBA(255, 255, 255, 120),
	}
}

// box converts an inclusive pixel box to a half-open shape rectangle.
func box(x0, y0, x1, y1 int) raster.Rect {
	return raster.Rect{X0: float64(x0), Y0: float64(y0), X1: float64(x1 + 1), Y1: float64(y1 + 1)}
}

// badgeGradient computes int(top*(1-t) + bottom*t) per channel. It is not
// raster.Mix: the two truncate differently on some rows. Alpha is opaque.
func badgeGradient(top, bottom raster.Color, t float64) raster.Color {
	ch := func(a, b uint8) uint8 {
		// conversions keep each product rounded on its own (no FMA)
		return raster.Clamp8(int(float64(float64(a)*(1-t)) + float64(float64(b)*t)))
	}
	return raster.RGBA(ch(top.R, bottom.R), ch(top.G, bottom.G), ch(top.B, bottom.B), 255)
}

// drawBadge renders a rounded gradient tile with a stylized "E" built from
// rounded bars. It is drawn natively at every size. Shapes replace the
// pixels under them, so the glow and highlight keep their own alpha.
func drawBadge(s int, p Palette) *raster.Canvas {
	img := raster.NewCanvas(s, raster.Transparent)
	fs := float64(s)

	top, bottom := p.color(badgeTop), p.color(badgeBottom)
	for y := 0; y < s; y++ {
		t := float64(y) / float64(max(1, s-1))
		img.FillRect(0, y, s, y+1, badgeGradient(top, bottom, t))
	}
	img.MaskRoundedRect(box(0, 0, s-1, s-1), float64(int(fs*0.22)))

	pad := int(fs * 0.22)
	stroke := max(2, int(fs*0.10))
	x0, x1 := pad, s-pad
	y0, y1 := pad, s-pad
	barRadius := float64(max(1, stroke/2))
	white := p.color(badgeMark)

	img.FillRoundedRect(box(x0-stroke, y0-stroke, x0+stroke, y1+stroke), float64(stroke), p.color(badgeGlow))
	img.FillRoundedRect(box(x0, y0, x0+stroke, y1), barRadius, white)

	barLen := int(float64(x1-x0) * 0.85)
	for _, y := range []int{y0, int(float64(y0+y1)/2 - float64(stroke)/2), y1 - stroke} {
		img.FillRoundedRect(box(x0, y, x0+barLen, y+stroke), barRadius, white)
	}

	img.FillEllipse(box(int(fs*0.72), int(fs*0.20), int(fs*0.80), int(fs*0.28)), p.color(badgeHighlight))
	return img
}
