// Package globeview is the interactive travel globe: it owns the render
// surface, camera, light rig and selection state, and reports marker clicks
// to the host.
package globeview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"travelglobe/geo"
	"travelglobe/gfx"
	"travelglobe/interact"
	"travelglobe/scene"
	"travelglobe/texture"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNotMounted = errors.New("globeview: not mounted")

// Stats describes the view after the last frame.
type Stats struct {
	Session      string
	Frames       uint64
	Markers      int
	Arcs         int
	TextureReady bool
	Render       gfx.Stats
}

// View is not safe for concurrent use. Mount, Frame, the input handlers and
// Unmount all run on the host's render loop.
type View struct {
	opts  Options
	dests geo.Destinations
	log   zerolog.Logger

	// Selection state. selected is a destination name; it may name a
	// destination the current filter hides.
	filter   geo.Filter
	selected string

	mounted  bool
	fallback bool
	session  string

	res      *gfx.Resources
	surface  *gfx.RGBATarget
	renderer *gfx.Renderer
	composer *scene.Composer
	orbit    *interact.OrbitCamera
	ctrl     *interact.Controller
	camera   gfx.Camera
	clock    scene.Clock

	cancel   context.CancelFunc
	texReady bool
	texCh    <-chan texture.Result

	built scene.Node
	dirty bool
	tree  scene.Node
	hits  []scene.Hit
	stats Stats
}

// New validates the destination list and prepares an unmounted view.
// Coordinates are clamped into range before validation.
func New(opts Options) (*View, error) {
	opts.setDefaults()
	dests := opts.Destinations.Clamped()
	if err := dests.Validate(); err != nil {
		return nil, fmt.Errorf("globeview: %w", err)
	}
	return &View{
		opts:   opts,
		dests:  dests,
		log:    opts.Logger.With().Str("component", "globeview").Logger(),
		filter: opts.Filter,
	}, nil
}

// Mount acquires the render surface and builds the scene. A surface that
// cannot be created puts the view into fallback mode, where it shows a
// static placeholder; Mount still succeeds.
func (v *View) Mount(ctx context.Context) error {
	if v.mounted {
		return nil
	}
	v.session = uuid.NewString()
	v.log = v.opts.Logger.With().Str("component", "globeview").Str("session", v.session).Logger()
	v.res = gfx.NewResources()
	v.clock = scene.Clock{}
	v.mounted = true
	v.dirty = true
	v.texReady = false
	v.stats = Stats{Session: v.session}

	surface, err := v.opts.NewSurface(v.opts.Width, v.opts.Height)
	if err != nil {
		v.enterFallback(err)
		return nil
	}
	v.surface = surface
	v.fallback = false

	v.renderer = gfx.NewRenderer()
	v.renderer.ClearColor = gfx.RGB(0x05, 0x07, 0x10)
	v.composer = scene.NewComposer(v.dests, v.opts.StarSource)
	v.orbit = interact.NewOrbitCamera()
	v.ctrl = interact.NewController(v.orbit, v.opts.Cursor, v.pick, v.click)
	v.ctrl.SetSelected(v.selected != "")
	v.camera = gfx.Camera{FOVYRad: 60 * math.Pi / 180, Near: 0.1, Far: 100}

	ctx, v.cancel = context.WithCancel(ctx)
	if v.opts.AsyncTexture {
		v.texCh = v.opts.Synthesizer.SynthesizeAsync(ctx, v.opts.TextureWidth, v.opts.TextureHeight)
	} else {
		v.texCh = nil
		start := time.Now()
		tex, err := v.opts.Synthesizer.SynthesizeContext(ctx, v.opts.TextureWidth, v.opts.TextureHeight)
		v.installTexture(texture.Result{Texture: tex, Elapsed: time.Since(start), Err: err})
	}

	v.log.Info().
		Int("width", v.opts.Width).
		Int("height", v.opts.Height).
		Int("destinations", len(v.dests)).
		Stringer("filter", v.filter).
		Msg("mounted")
	return nil
}

func (v *View) enterFallback(err error) {
	v.fallback = true
	v.opts.Metrics.IncSurfaceFallback()
	v.log.Error().Err(err).Msg("render surface unavailable, showing placeholder")

	w, h := placeholderSize(v.opts.Width, v.opts.Height)
	// placeholderSize keeps both sides in range.
	v.surface, _ = gfx.NewRGBATarget(w, h)
	drawPlaceholder(v.surface, err)
}

func (v *View) installTexture(res texture.Result) {
	if res.Err != nil {
		if !errors.Is(res.Err, context.Canceled) {
			v.log.Error().Err(res.Err).Msg("texture synthesis failed")
		}
		return
	}
	v.composer.SetTexture(res.Texture)
	v.texReady = true
	v.dirty = true
	v.opts.Metrics.ObserveTextureSynth(res.Elapsed)
	w, h := res.Texture.Size()
	v.log.Debug().Int("width", w).Int("height", h).Dur("elapsed", res.Elapsed).Msg("texture ready")
}

// Unmount stops background work and releases every resource the view
// holds. It is safe to call more than once.
func (v *View) Unmount() {
	if !v.mounted {
		return
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.ctrl != nil {
		v.ctrl.Reset()
	}
	v.res.Dispose()
	v.surface = nil
	v.renderer = nil
	v.composer = nil
	v.ctrl = nil
	v.orbit = nil
	v.texCh = nil
	v.hits = nil
	v.tree = scene.Node{}
	v.built = scene.Node{}
	v.mounted = false
	v.log.Info().Uint64("frames", v.clock.Frames).Msg("unmounted")
}

func (v *View) Mounted() bool { return v.mounted }

// Fallback reports whether the view is showing the placeholder.
func (v *View) Fallback() bool { return v.fallback }

// ResourceCount returns the number of meshes currently held.
func (v *View) ResourceCount() int { return v.res.Len() }

// Image returns the last rendered frame, or nil when unmounted.
func (v *View) Image() *image.RGBA {
	if v.surface == nil {
		return nil
	}
	return v.surface.Image()
}

func (v *View) Filter() geo.Filter { return v.filter }

// SetFilter changes which markers are shown. The selection is kept even if
// the filter hides it.
func (v *View) SetFilter(f geo.Filter) {
	if f == v.filter {
		return
	}
	v.filter = f
	v.dirty = true
	ev := v.log.Info().Stringer("filter", f)
	if v.selected != "" && !v.selectionVisible() {
		ev = ev.Str("hidden_selection", v.selected)
	}
	ev.Msg("filter changed")
}

// CycleFilter steps all → visited → planned → all.
func (v *View) CycleFilter() { v.SetFilter(v.filter.Next()) }

// Selection returns the selected destination. It is returned even when the
// filter hides it.
func (v *View) Selection() (geo.Destination, bool) {
	if v.selected == "" {
		return geo.Destination{}, false
	}
	return v.dests.Find(v.selected)
}

// Select makes name the selection. Unknown names are ignored and reported
// as false.
func (v *View) Select(name string) bool {
	d, ok := v.dests.Find(name)
	if !ok {
		v.log.Warn().Str("destination", name).Msg("select: unknown destination")
		return false
	}
	if v.selected != d.Name {
		v.selected = d.Name
		v.dirty = true
		v.opts.Metrics.IncSelection()
		v.log.Info().Str("destination", d.Name).Bool("visited", d.Visited).Msg("selected")
	}
	if v.ctrl != nil {
		v.ctrl.SetSelected(true)
	}
	return true
}

func (v *View) ClearSelection() {
	if v.selected == "" {
		return
	}
	v.log.Info().Str("destination", v.selected).Msg("selection cleared")
	v.selected = ""
	v.dirty = true
	if v.ctrl != nil {
		v.ctrl.SetSelected(false)
	}
}

func (v *View) selectionVisible() bool {
	d, ok := v.Selection()
	return ok && v.filter.Match(d)
}

// click is the controller's selection callback.
func (v *View) click(name string) {
	if !v.Select(name) {
		return
	}
	if v.opts.OnDestinationClick != nil {
		d, _ := v.dests.Find(name)
		v.opts.OnDestinationClick(d)
	}
}

// HandlePointer delivers one pointer event. Events arriving while the view
// is unmounted or showing the placeholder are dropped.
func (v *View) HandlePointer(ev interact.PointerEvent) {
	if !v.mounted || v.fallback || v.ctrl == nil {
		return
	}
	v.ctrl.Handle(ev)
}

// Orbit exposes the camera rig, or nil when not mounted.
func (v *View) Orbit() *interact.OrbitCamera { return v.orbit }

// Focus turns the camera toward a destination, accounting for the current
// globe rotation.
func (v *View) Focus(name string) bool {
	d, ok := v.dests.Find(name)
	if !ok || v.orbit == nil {
		return false
	}
	p := gfx.Mat4RotateY(scene.Spin(v.clock.Seconds(), scene.GlobeRate)).
		TransformPoint(geo.Project(d.Lat, d.Lng, 1))
	v.orbit.Yaw = math.Atan2(p.X, p.Z)
	v.orbit.Pitch = -math.Asin(math.Max(-1, math.Min(1, p.Y)))
	v.orbit.Rotate(0, 0)
	return true
}

// ToggleWireframe switches the renderer between solid and wireframe.
func (v *View) ToggleWireframe() {
	if v.renderer == nil {
		return
	}
	if v.renderer.Mode == gfx.RenderWireframe {
		v.renderer.SetRenderMode(gfx.RenderSolid)
	} else {
		v.renderer.SetRenderMode(gfx.RenderWireframe)
	}
}

// Scene returns the animated tree drawn by the last frame.
func (v *View) Scene() scene.Node { return v.tree }

// Markers returns the names of the destinations with a marker in the last
// frame.
func (v *View) Markers() []string { return v.tree.Dests(scene.KindMarker) }

// Arcs returns the arc targets in the last frame.
func (v *View) Arcs() []string { return v.tree.Dests(scene.KindArc) }

func (v *View) Stats() Stats { return v.stats }
