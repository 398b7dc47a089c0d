package icon

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"favicon-gen/internal/raster"
)

// Palette maps a style's named colors to their values.
type Palette map[string]raster.Color

func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p Palette) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// color looks up a name every style is expected to define. A missing name
// is a programming error in the style table.
func (p Palette) color(name string) raster.Color {
	c, ok := p[name]
	if !ok {
		panic("icon: palette has no color " + strconv.Quote(name))
	}
	return c
}

// WithOverrides returns a copy with the given hex colors replacing defaults.
// Names the palette does not define are rejected.
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	out := p.Clone()
	for name, raw := range overrides {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := out[key]; !ok {
			return nil, fmt.Errorf("unknown palette color %q (have %s)", name, strings.Join(p.Names(), ", "))
		}
		c, err := ParseColor(raw)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", name, err)
		}
		out[key] = c
	}
	return out, nil
}

// ParseColor accepts #rrggbb or #rrggbbaa.
func ParseColor(raw string) (raster.Color, error) {
	value := strings.TrimSpace(raw)
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	alpha := uint8(255)
	switch len(value) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(value[7:], 16, 8)
		if err != nil {
			return raster.Color{}, fmt.Errorf("invalid alpha in %q: %w", raw, err)
		}
		alpha = uint8(a)
		value = value[:7]
	default:
		return raster.Color{}, fmt.Errorf("invalid color %q (want #rrggbb or #rrggbbaa)", raw)
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return raster.Color{}, fmt.Errorf("invalid color %q: %w", raw, err)
	}
	r, g, b := c.RGB255()
	return raster.RGBA(r, g, b, alpha), nil
}
