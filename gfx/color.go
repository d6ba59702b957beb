package gfx

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an RGBA color in 8-bit channels (straight, not premultiplied).
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// MulScalar scales the color channels by s in [0,1]; alpha is kept.
func (c Color) MulScalar(s float64) Color {
	s = Clamp01(s)
	mul := func(ch uint8) uint8 {
		return uint8(float64(ch)*s + 0.5)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Modulate multiplies two colors channel-wise.
func (c Color) Modulate(o Color) Color {
	mul := func(a, b uint8) uint8 { return uint8((uint16(a)*uint16(b) + 127) / 255) }
	return Color{R: mul(c.R, o.R), G: mul(c.G, o.G), B: mul(c.B, o.B), A: mul(c.A, o.A)}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// WithOpacity multiplies alpha by op in [0,1].
func (c Color) WithOpacity(op float64) Color {
	c.A = uint8(float64(c.A)*Clamp01(op) + 0.5)
	return c
}

// Over composites c over dst and returns an opaque result when dst is opaque.
func (c Color) Over(dst Color) Color {
	if c.A == 0xFF {
		return c
	}
	if c.A == 0 {
		return dst
	}
	a := uint32(c.A)
	ia := 255 - a
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*ia + 127) / 255)
	}
	outA := a + uint32(dst.A)*ia/255
	return Color{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B), A: uint8(outA)}
}

// NRGBA converts to the standard library color type.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// ParseHexColor parses "#rrggbb", "#rgb" or the same without the leading '#'.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 3 {
		return Color{}, fmt.Errorf("gfx: parse color %q: bad length", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("gfx: parse color %q: %w", s, err)
	}
	if len(h) == 3 {
		r := uint8(v>>8&0xF) * 17
		g := uint8(v>>4&0xF) * 17
		b := uint8(v&0xF) * 17
		return RGB(r, g, b), nil
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }
