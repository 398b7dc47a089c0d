package raster

import (
	"image"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Rect is a half-open rectangle in canvas coordinates.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// coverage rasterizes a path into an anti-aliased alpha mask the size of the canvas.
func (c *Canvas) coverage(build func(z *vector.Rasterizer)) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, c.N, c.N))
	if c.N == 0 {
		return mask
	}
	z := vector.NewRasterizer(c.N, c.N)
	build(z)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func roundedRectPath(z *vector.Rasterizer, r Rect, radius float64) {
	w, h := r.X1-r.X0, r.Y1-r.Y0
	if radius > w/2 {
		radius = w / 2
	}
	if radius > h/2 {
		radius = h / 2
	}
	if radius < 0 {
		radius = 0
	}
	x0, y0, x1, y1 := float32(r.X0), float32(r.Y0), float32(r.X1), float32(r.Y1)
	rr := float32(radius)
	k := rr * kappa

	z.MoveTo(x0+rr, y0)
	z.LineTo(x1-rr, y0)
	z.CubeTo(x1-rr+k, y0, x1, y0+rr-k, x1, y0+rr)
	z.LineTo(x1, y1-rr)
	z.CubeTo(x1, y1-rr+k, x1-rr+k, y1, x1-rr, y1)
	z.LineTo(x0+rr, y1)
	z.CubeTo(x0+rr-k, y1, x0, y1-rr+k, x0, y1-rr)
	z.LineTo(x0, y0+rr)
	z.CubeTo(x0, y0+rr-k, x0+rr-k, y0, x0+rr, y0)
	z.ClosePath()
}

func ellipsePath(z *vector.Rasterizer, r Rect) {
	cx, cy := float32((r.X0+r.X1)/2), float32((r.Y0+r.Y1)/2)
	rx, ry := float32((r.X1-r.X0)/2), float32((r.Y1-r.Y0)/2)
	kx, ky := rx*kappa, ry*kappa

	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
}

// fillMask overwrites every pixel the shape covers by at least half with
// col, alpha included. Nothing is composited with what was there before.
func (c *Canvas) fillMask(mask *image.Alpha, col Color) {
	for y := 0; y < c.N; y++ {
		for x := 0; x < c.N; x++ {
			if mask.AlphaAt(x, y).A < 128 {
				continue
			}
			c.Set(x, y, col)
		}
	}
}

// FillRoundedRect replaces the pixels inside a rounded rectangle with col.
func (c *Canvas) FillRoundedRect(r Rect, radius float64, col Color) {
	if r.empty() {
		return
	}
	mask := c.coverage(func(z *vector.Rasterizer) { roundedRectPath(z, r, radius) })
	c.fillMask(mask, col)
}

// FillEllipse replaces the pixels inside the ellipse inscribed in r with col.
func (c *Canvas) FillEllipse(r Rect, col Color) {
	if r.empty() {
		return
	}
	mask := c.coverage(func(z *vector.Rasterizer) { ellipsePath(z, r) })
	c.fillMask(mask, col)
}

// MaskRoundedRect sets alpha to 255 inside a rounded rectangle (coverage of
// at least half, as in fillMask) and to 0 outside it.
func (c *Canvas) MaskRoundedRect(r Rect, radius float64) {
	mask := c.coverage(func(z *vector.Rasterizer) {
		if !r.empty() {
			roundedRectPath(z, r, radius)
		}
	})
	for y := 0; y < c.N; y++ {
		for x := 0; x < c.N; x++ {
			a := uint8(0)
			if mask.AlphaAt(x, y).A >= 128 {
				a = 255
			}
			c.Pix[c.offset(x, y)+3] = a
		}
	}
}
