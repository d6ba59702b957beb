// Package texture synthesizes the equirectangular planet surface painted
// onto the globe sphere.
package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"travelglobe/gfx"
)

const (
	DefaultWidth  = 2048
	DefaultHeight = 1024
)

// ErrTextureSize is returned for non-positive or oversized resolutions.
var ErrTextureSize = errors.New("texture: invalid size")

// Texture is an immutable synthesized surface. u runs west to east
// (longitude -180..180), v runs north to south (latitude 90..-90).
type Texture struct {
	img *image.RGBA
}

func (t *Texture) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the pixels for encoding and upload. Callers must not write
// to it.
func (t *Texture) Image() image.Image { return t.img }

// At returns the texel at integer coordinates, wrapping x and clamping y.
func (t *Texture) At(x, y int) gfx.Color {
	w, h := t.Size()
	x %= w
	if x < 0 {
		x += w
	}
	if y < 0 {
		y = 0
	}
	if y >= h {
		y = h - 1
	}
	i := t.img.PixOffset(x, y)
	p := t.img.Pix[i : i+4 : i+4]
	return gfx.RGBA(p[0], p[1], p[2], p[3])
}

// Sample bilinearly filters the texture. u wraps so sampling is seamless
// across the antimeridian; v clamps at the poles.
func (t *Texture) Sample(u, v float64) gfx.Color {
	w, h := t.Size()
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)

	c00 := t.At(ix, iy)
	c10 := t.At(ix+1, iy)
	c01 := t.At(ix, iy+1)
	c11 := t.At(ix+1, iy+1)
	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a) + (float64(b)-float64(a))*tx
		bot := float64(c) + (float64(d)-float64(c))*tx
		return uint8(top + (bot-top)*ty + 0.5)
	}
	return gfx.RGB(
		mix(c00.R, c10.R, c01.R, c11.R),
		mix(c00.G, c10.G, c01.G, c11.G),
		mix(c00.B, c10.B, c01.B, c11.B),
	)
}

func (t *Texture) EncodePNG(w io.Writer) error {
	return png.Encode(w, t.img)
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed makes every synthesis start from the same PCG state, so equal
// seeds give byte-identical textures.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		s.source = func() rand.Source { return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15) }
	}
}

// WithSource installs a factory called once per synthesis.
func WithSource(fn func() rand.Source) Option {
	return func(s *Synthesizer) { s.source = fn }
}

// Synthesizer paints planet textures and remembers the last one it made.
// Asking again for the same resolution returns the remembered texture.
// Painting happens outside the lock, so Cached never waits on a synthesis.
type Synthesizer struct {
	source func() rand.Source

	mu   sync.Mutex
	last *Texture
}

func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		source: func() rand.Source { return rand.NewPCG(rand.Uint64(), rand.Uint64()) },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Synthesize returns a w×h texture.
func (s *Synthesizer) Synthesize(w, h int) (*Texture, error) {
	return s.SynthesizeContext(context.Background(), w, h)
}

// SynthesizeContext is Synthesize with cancellation checked between layers.
func (s *Synthesizer) SynthesizeContext(ctx context.Context, w, h int) (*Texture, error) {
	if w <= 0 || h <= 0 || w > gfx.MaxSurfaceSide || h > gfx.MaxSurfaceSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, w, h)
	}

	if tex := s.cached(w, h); tex != nil {
		return tex, nil
	}

	rng := rand.New(s.source())
	c := newCanvas(w, h)
	for _, l := range layers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("texture: %s layer: %w", l.name, err)
		}
		l.paint(c, rng)
	}
	tex := &Texture{img: c.img}

	s.mu.Lock()
	s.last = tex
	s.mu.Unlock()
	return tex, nil
}

func (s *Synthesizer) cached(w, h int) *Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	if lw, lh := s.last.Size(); lw != w || lh != h {
		return nil
	}
	return s.last
}

// Cached returns the last synthesized texture, or nil.
func (s *Synthesizer) Cached() *Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Result is delivered by SynthesizeAsync.
type Result struct {
	Texture *Texture
	Elapsed time.Duration
	Err     error
}

// SynthesizeAsync paints off the caller's goroutine. The channel receives
// exactly one Result and is then closed.
func (s *Synthesizer) SynthesizeAsync(ctx context.Context, w, h int) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		start := time.Now()
		tex, err := s.SynthesizeContext(ctx, w, h)
		out <- Result{Texture: tex, Elapsed: time.Since(start), Err: err}
	}()
	return out
}
