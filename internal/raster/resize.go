package raster

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Resampler names a downsampling method.
type Resampler string

const (
	ResampleBox        Resampler = "box"
	ResampleNearest    Resampler = "nearest"
	ResampleBilinear   Resampler = "bilinear"
	ResampleCatmullRom Resampler = "catmullrom"
)

func ParseResampler(raw string) (Resampler, error) {
	switch r := Resampler(strings.ToLower(strings.TrimSpace(raw))); r {
	case "":
		return ResampleBox, nil
	case ResampleBox, ResampleNearest, ResampleBilinear, ResampleCatmullRom:
		return r, nil
	default:
		return "", fmt.Errorf("unknown resampler %q (want box, nearest, bilinear or catmullrom)", raw)
	}
}

// Resize scales src to size×size. Scaling to the source size returns src itself.
func (r Resampler) Resize(src *Canvas, size int) *Canvas {
	if size == src.N {
		return src
	}
	var scaler draw.Scaler
	switch r {
	case ResampleNearest:
		scaler = draw.NearestNeighbor
	case ResampleBilinear:
		scaler = draw.BiLinear
	case ResampleCatmullRom:
		scaler = draw.CatmullRom
	default:
		return ResizeBox(src, size)
	}
	dst := NewCanvas(size, Transparent)
	dstImg := dst.Image()
	scaler.Scale(dstImg, dstImg.Rect, src.Image(), image.Rect(0, 0, src.N, src.N), draw.Src, nil)
	return dst
}

// ResizeBox downsamples with an unweighted area average. Each destination
// pixel averages the source span [floor(x*sw/dw), floor((x+1)*sw/dw)); a
// span that would be empty covers exactly one source pixel.
func ResizeBox(src *Canvas, size int) *Canvas {
	dst := NewCanvas(size, Transparent)
	sw, sh := src.N, src.N
	dw, dh := size, size
	for y := 0; y < dh; y++ {
		iy0, iy1 := boxSpan(y, sh, dh)
		for x := 0; x < dw; x++ {
			ix0, ix1 := boxSpan(x, sw, dw)

			var acc [4]float64
			wsum := 0.0
			for sy := iy0; sy < iy1 && sy < sh; sy++ {
				for sx := ix0; sx < ix1 && sx < sw; sx++ {
					i := src.offset(sx, sy)
					acc[0] += float64(src.Pix[i])
					acc[1] += float64(src.Pix[i+1])
					acc[2] += float64(src.Pix[i+2])
					acc[3] += float64(src.Pix[i+3])
					wsum++
				}
			}
			if wsum == 0 {
				wsum = 1
			}
			di := dst.offset(x, y)
			for ch := 0; ch < 4; ch++ {
				dst.Pix[di+ch] = Clamp8(int(acc[ch]/wsum + 0.5))
			}
		}
	}
	return dst
}

func boxSpan(d, srcLen, dstLen int) (int, int) {
	lo := float64(d) * float64(srcLen) / float64(dstLen)
	hi := float64(d+1) * float64(srcLen) / float64(dstLen)
	i0 := int(lo)
	i1 := int(hi)
	if i1 <= i0 {
		i1 = i0 + 1
	}
	return i0, i1
}
