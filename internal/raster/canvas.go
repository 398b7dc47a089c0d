package raster

import (
	"image"
	"image/draw"
)

// Canvas is a square pixel buffer holding straight-alpha RGBA bytes.
type Canvas struct {
	N   int
	Pix []uint8
}

func NewCanvas(n int, fill Color) *Canvas {
	if n < 0 {
		n = 0
	}
	c := &Canvas{N: n, Pix: make([]uint8, n*n*4)}
	if fill != Transparent {
		for i := 0; i < len(c.Pix); i += 4 {
			c.Pix[i] = fill.R
			c.Pix[i+1] = fill.G
			c.Pix[i+2] = fill.B
			c.Pix[i+3] = fill.A
		}
	}
	return c
}

func (c *Canvas) offset(x, y int) int {
	return (y*c.N + x) * 4
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.N && y < c.N
}

// At returns the pixel at (x, y); out-of-range coordinates read as transparent.
func (c *Canvas) At(x, y int) Color {
	if !c.inside(x, y) {
		return Transparent
	}
	i := c.offset(x, y)
	return Color{R: c.Pix[i], G: c.Pix[i+1], B: c.Pix[i+2], A: c.Pix[i+3]}
}

// Set writes the pixel at (x, y); out-of-range writes are dropped.
func (c *Canvas) Set(x, y int, col Color) {
	if !c.inside(x, y) {
		return
	}
	i := c.offset(x, y)
	c.Pix[i] = col.R
	c.Pix[i+1] = col.G
	c.Pix[i+2] = col.B
	c.Pix[i+3] = col.A
}

// Blend composites col over the pixel at (x, y).
func (c *Canvas) Blend(x, y int, col Color) {
	if !c.inside(x, y) {
		return
	}
	c.Set(x, y, Over(c.At(x, y), col))
}

func (c *Canvas) clampRect(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	x0 = clampInt(x0, 0, c.N)
	y0 = clampInt(y0, 0, c.N)
	x1 = clampInt(x1, 0, c.N)
	y1 = clampInt(y1, 0, c.N)
	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}

// FillRect overwrites the half-open rectangle [x0,x1)×[y0,y1) with col.
func (c *Canvas) FillRect(x0, y0, x1, y1 int, col Color) {
	x0, y0, x1, y1, ok := c.clampRect(x0, y0, x1, y1)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		row := c.offset(x0, y)
		for x := x0; x < x1; x++ {
			c.Pix[row] = col.R
			c.Pix[row+1] = col.G
			c.Pix[row+2] = col.B
			c.Pix[row+3] = col.A
			row += 4
		}
	}
}

// FillRectOver composites col over the half-open rectangle [x0,x1)×[y0,y1).
func (c *Canvas) FillRectOver(x0, y0, x1, y1 int, col Color) {
	x0, y0, x1, y1, ok := c.clampRect(x0, y0, x1, y1)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y, Over(c.At(x, y), col))
		}
	}
}

// Image exposes the canvas as an NRGBA image sharing the same pixel buffer.
func (c *Canvas) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    c.Pix,
		Stride: c.N * 4,
		Rect:   image.Rect(0, 0, c.N, c.N),
	}
}

// CanvasFromImage copies a square image into a new canvas.
func CanvasFromImage(img image.Image) *Canvas {
	b := img.Bounds()
	n := b.Dx()
	if b.Dy() < n {
		n = b.Dy()
	}
	c := NewCanvas(n, Transparent)
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == n*4 && b.Dx() == n && b.Dy() == n && b.Min == (image.Point{}) {
		copy(c.Pix, nrgba.Pix)
		return c
	}
	dst := c.Image()
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
