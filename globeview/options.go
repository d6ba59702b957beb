package globeview

import (
	"math/rand/v2"
	"time"

	"travelglobe/geo"
	"travelglobe/gfx"
	"travelglobe/interact"
	"travelglobe/texture"

	"github.com/rs/zerolog"
)

// Metrics receives view measurements. A nil Metrics in Options disables
// reporting.
type Metrics interface {
	ObserveFrame(d time.Duration)
	SetScene(markers, arcs int)
	IncSelection()
	ObserveTextureSynth(d time.Duration)
	IncSurfaceFallback()
}

type nopMetrics struct{}

func (nopMetrics) ObserveFrame(time.Duration)        {}
func (nopMetrics) SetScene(int, int)                 {}
func (nopMetrics) IncSelection()                     {}
func (nopMetrics) ObserveTextureSynth(time.Duration) {}
func (nopMetrics) IncSurfaceFallback()               {}

// SurfaceFactory creates the render surface.
type SurfaceFactory func(w, h int) (*gfx.RGBATarget, error)

type Options struct {
	Width  int
	Height int

	// TextureWidth and TextureHeight default to 2048×1024.
	TextureWidth  int
	TextureHeight int
	// Synthesizer paints the planet texture. Nil creates an unseeded one.
	Synthesizer *texture.Synthesizer
	// AsyncTexture paints the texture off the render loop. Frames show a
	// flat ocean until it arrives.
	AsyncTexture bool

	// StarSource scatters the starfield. Nil uses a random seed.
	StarSource rand.Source

	Destinations geo.Destinations
	Filter       geo.Filter

	// OnDestinationClick is called when a marker is clicked.
	OnDestinationClick func(geo.Destination)
	Cursor             interact.Cursor

	NewSurface SurfaceFactory
	HideHUD    bool

	Logger  zerolog.Logger
	Metrics Metrics
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = 640
	}
	if o.Height <= 0 {
		o.Height = 480
	}
	if o.TextureWidth <= 0 {
		o.TextureWidth = texture.DefaultWidth
	}
	if o.TextureHeight <= 0 {
		o.TextureHeight = texture.DefaultHeight
	}
	if o.Synthesizer == nil {
		o.Synthesizer = texture.NewSynthesizer()
	}
	if o.NewSurface == nil {
		o.NewSurface = gfx.NewRGBATarget
	}
	if o.Metrics == nil {
		o.Metrics = nopMetrics{}
	}
}
