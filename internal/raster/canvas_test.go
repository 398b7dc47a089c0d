package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestCanvasFillRectClamps(t *testing.T) {
	c := NewCanvas(4, Transparent)
	red := RGBA(255, 0, 0, 255)
	c.FillRect(-3, 2, 10, 10, red)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := Transparent
			if y >= 2 {
				want = red
			}
			if got := c.At(x, y); got != want {
				t.Fatalf("At(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestCanvasFillRectEmptyIsNoop(t *testing.T) {
	c := NewCanvas(4, RGBA(1, 2, 3, 4))
	before := append([]uint8(nil), c.Pix...)
	c.FillRect(3, 3, 1, 1, RGBA(9, 9, 9, 9))
	c.FillRectOver(5, 0, 8, 4, RGBA(9, 9, 9, 9))
	for i := range before {
		if c.Pix[i] != before[i] {
			t.Fatalf("pixel byte %d changed from %d to %d", i, before[i], c.Pix[i])
		}
	}
}

func TestCanvasFillRectOverComposites(t *testing.T) {
	c := NewCanvas(2, RGBA(0, 0, 0, 255))
	c.FillRectOver(0, 0, 1, 1, RGBA(255, 255, 255, 128))
	if got := c.At(0, 0); got != RGBA(128, 128, 128, 255) {
		t.Fatalf("At(0,0) = %+v", got)
	}
	if got := c.At(1, 1); got != RGBA(0, 0, 0, 255) {
		t.Fatalf("At(1,1) = %+v", got)
	}
}

func TestCanvasOutOfRange(t *testing.T) {
	c := NewCanvas(2, Transparent)
	c.Set(5, 5, RGBA(1, 1, 1, 1))
	if got := c.At(-1, 0); got != Transparent {
		t.Fatalf("At(-1,0) = %+v", got)
	}
}

func TestCanvasImageRoundTrip(t *testing.T) {
	c := NewCanvas(3, RGBA(10, 20, 30, 40))
	img := c.Image()
	if got := img.NRGBAAt(2, 2); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Fatalf("NRGBAAt = %+v", got)
	}

	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	src.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	copied := CanvasFromImage(src)
	if got := copied.At(1, 1); got != RGBA(1, 2, 3, 4) {
		t.Fatalf("CanvasFromImage At(1,1) = %+v", got)
	}
}
