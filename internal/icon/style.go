// Package icon holds the procedural icon designs and renders them at the
// requested resolutions.
package icon

import (
	"fmt"
	"sort"
	"strings"

	"favicon-gen/internal/raster"
)

const (
	StyleGlow  = "glow"
	StyleBadge = "badge"
)

// Style is one icon design.
type Style struct {
	Name        string
	Description string
	// Native styles are drawn directly at every size; the others are drawn
	// once at the base size and resized.
	Native  bool
	palette func() Palette
	draw    func(n int, p Palette) *raster.Canvas
}

var styles = map[string]Style{
	StyleGlow: {
		Name:        StyleGlow,
		Description: "dark gradient tile with color glows and a shadowed E, downsampled from the base size",
		palette:     glowPalette,
		draw:        drawGlow,
	},
	StyleBadge: {
		Name:        StyleBadge,
		Description: "rounded blue-to-mint badge with a rounded-bar E, drawn natively per size",
		Native:      true,
		palette:     badgePalette,
		draw:        drawBadge,
	},
}

func Lookup(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = StyleGlow
	}
	s, ok := styles[key]
	if !ok {
		return Style{}, fmt.Errorf("unknown style %q (want %s)", name, strings.Join(StyleNames(), " or "))
	}
	return s, nil
}

func StyleNames() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPalette returns a fresh copy of the style's colors.
func (s Style) DefaultPalette() Palette {
	return s.palette()
}

func (s Style) Draw(n int, p Palette) *raster.Canvas {
	if p == nil {
		p = s.palette()
	}
	return s.draw(n, p)
}

type RenderOptions struct {
	Sizes     []int
	BaseSize  int
	Palette   Palette
	Resampler raster.Resampler
}

// Render produces one canvas per requested size, in the order given.
func (s Style) Render(opts RenderOptions) ([]*raster.Canvas, error) {
	if len(opts.Sizes) == 0 {
		return nil, fmt.Errorf("no sizes requested")
	}
	out := make([]*raster.Canvas, 0, len(opts.Sizes))
	if s.Native {
		for _, size := range opts.Sizes {
			out = append(out, s.Draw(size, opts.Palette))
		}
		return out, nil
	}

	if opts.BaseSize <= 0 {
		return nil, fmt.Errorf("base size must be positive, got %d", opts.BaseSize)
	}
	base := s.Draw(opts.BaseSize, opts.Palette)
	resampler := opts.Resampler
	if resampler == "" {
		resampler = raster.ResampleBox
	}
	for _, size := range opts.Sizes {
		out = append(out, resampler.Resize(base, size))
	}
	return out, nil
}
