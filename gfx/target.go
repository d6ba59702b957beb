package gfx

import (
	"errors"
	"fmt"
	"image"
)

// ErrSurfaceSize reports a render surface that cannot be allocated.
var ErrSurfaceSize = errors.New("gfx: invalid surface size")

// MaxSurfaceSide bounds each side of an RGBATarget.
const MaxSurfaceSide = 8192

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	BlendPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderSolid RenderMode = iota
	RenderWireframe
)

// RGBATarget renders into an *image.RGBA.
type RGBATarget struct {
	img *image.RGBA
}

// NewRGBATarget allocates a w×h target.
func NewRGBATarget(w, h int) (*RGBATarget, error) {
	if w <= 0 || h <= 0 || w > MaxSurfaceSide || h > MaxSurfaceSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceSize, w, h)
	}
	return &RGBATarget{img: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

// Image returns the backing image. It is overwritten by the next render.
func (t *RGBATarget) Image() *image.RGBA {
	if t == nil {
		return nil
	}
	return t.img
}

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.img == nil {
		return
	}
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := t.img.Pix
	p[off+0] = c.R
	p[off+1] = c.G
	p[off+2] = c.B
	p[off+3] = c.A
}

func (t *RGBATarget) BlendPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := t.img.Pix
	dst := Color{R: p[off], G: p[off+1], B: p[off+2], A: p[off+3]}
	out := c.Over(dst)
	p[off+0] = out.R
	p[off+1] = out.G
	p[off+2] = out.B
	p[off+3] = out.A
}

// At returns the color at (x, y), or zero when out of bounds.
func (t *RGBATarget) At(x, y int) Color {
	off, ok := t.offset(x, y)
	if !ok {
		return Color{}
	}
	p := t.img.Pix
	return Color{R: p[off], G: p[off+1], B: p[off+2], A: p[off+3]}
}

func (t *RGBATarget) offset(x, y int) (int, bool) {
	if t == nil || t.img == nil {
		return 0, false
	}
	b := t.img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return 0, false
	}
	return y*t.img.Stride + x*4, true
}
