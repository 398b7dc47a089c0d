package icon

import (
	"math"

	"favicon-gen/internal/raster"
)

const (
	glowBG0        = "bg0"
	glowBG1        = "bg1"
	glowCyan       = "cyan"
	glowAmber      = "amber"
	glowPeriwinkle = "periwinkle"
	glowMark       = "mark"
	glowHighlight  = "highlight"
	glowShadow     = "shadow"
	glowShadowSoft = "shadow-soft"
)

func glowPalette() Palette {
	return Palette{
		glowBG0:        raster.RGBA(7, 11, 26, 255),
		glowBG1:        raster.RGBA(11, 18, 48, 255),
		glowCyan:       raster.RGBA(105, 255, 226, 255),
		glowAmber:      raster.RGBA(255, 194, 94, 255),
		glowPeriwinkle: raster.RGBA(138, 152, 255, 255),
		glowMark:       raster.RGBA(245, 247, 255, 240),
		glowHighlight:  raster.RGBA(255, 255, 255, 90),
		glowShadow:     raster.RGBA(0, 0, 0, 120),
		glowShadowSoft: raster.RGBA(0, 0, 0, 70),
	}
}

type radialGlow struct {
	cx, cy   int
	radius   float64
	color    raster.Color
	strength float64
}

// at returns the glow color with alpha falling off quadratically with distance.
func (g radialGlow) at(x, y int) raster.Color {
	dx := float64(x - g.cx)
	dy := float64(y - g.cy)
	d := math.Sqrt(dx*dx + dy*dy)
	t := 1.0 - math.Min(1.0, d/g.radius)
	return g.color.WithAlpha(raster.Clamp8(int(255 * (t * t) * g.strength)))
}

// drawGlow renders the dark gradient tile with three soft color glows, a
// shadowed "E" mark and a cut top-right corner.
func drawGlow(n int, p Palette) *raster.Canvas {
	bg0, bg1 := p.color(glowBG0), p.color(glowBG1)
	img := raster.NewCanvas(n, bg0)

	fn := float64(n)
	glows := []radialGlow{
		{cx: int(fn * 0.22), cy: int(fn * 0.20), radius: fn * 0.78, color: p.color(glowCyan), strength: 0.16},
		{cx: int(fn * 0.82), cy: int(fn * 0.22), radius: fn * 0.72, color: p.color(glowAmber), strength: 0.14},
		{cx: int(fn * 0.52), cy: int(fn * 0.84), radius: fn * 0.82, color: p.color(glowPeriwinkle), strength: 0.12},
	}
	for y := 0; y < n; y++ {
		t := float64(y) / float64(max(1, n-1))
		base := raster.Mix(bg0, bg1, t)
		for x := 0; x < n; x++ {
			c := base
			for _, g := range glows {
				c = raster.Over(c, g.at(x, y))
			}
			img.Set(x, y, c)
		}
	}

	mark := newEMark(n)
	ox := max(1, int(fn*0.02))
	oy := max(1, int(fn*0.03))
	mark.draw(img, ox, oy, p.color(glowShadow))
	mark.draw(img, ox/2, oy/2, p.color(glowShadowSoft))
	mark.draw(img, 0, 0, p.color(glowMark))
	img.FillRectOver(mark.x0, mark.y0, mark.x1, mark.y0+max(1, mark.barH/3), p.color(glowHighlight))

	cut := max(1, int(fn*0.05))
	for y := 0; y < cut; y++ {
		for x := 0; x < cut-y; x++ {
			img.Set(n-1-x, y, raster.Transparent)
		}
	}
	return img
}

// eMark is the block "E" geometry for a canvas of size n.
type eMark struct {
	x0, y0, x1, y1 int
	stroke         int
	barH           int
	gap            int
}

func newEMark(n int) eMark {
	fn := float64(n)
	pad := int(fn * 0.18)
	return eMark{
		x0:     pad,
		y0:     pad,
		x1:     n - pad,
		y1:     n - pad,
		stroke: max(2, int(fn*0.08)),
		barH:   max(2, int(fn*0.11)),
		gap:    max(2, int(fn*0.07)),
	}
}

func (m eMark) draw(img *raster.Canvas, dx, dy int, col raster.Color) {
	// stem
	img.FillRectOver(m.x0+dx, m.y0+dy, m.x0+m.stroke+dx, m.y1+dy, col)
	// top bar
	img.FillRectOver(m.x0+dx, m.y0+dy, m.x1+dx, m.y0+m.barH+dy, col)
	// middle bar
	my0 := m.y0 + m.barH + m.gap
	img.FillRectOver(m.x0+dx, my0+dy, m.x0+int(float64(m.x1-m.x0)*0.78)+dx, my0+m.barH+dy, col)
	// bottom bar
	img.FillRectOver(m.x0+dx, m.y1-m.barH+dy, m.x1+dx, m.y1+dy, col)
}
