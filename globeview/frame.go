package globeview

import (
	"math"
	"time"

	"travelglobe/gfx"
	"travelglobe/scene"
)

// minPickRadius keeps distant markers clickable.
const minPickRadius = 6.0

var lightRig = gfx.Light{
	Ambient: 0.4,
	Dirs: []gfx.DirLight{
		{Dir: gfx.V3(-5, -5, -5), Amount: 0.8},
		{Dir: gfx.V3(5, 5, 5), Amount: 0.3, Tint: gfx.RGB(0x44, 0x44, 0xff)},
	},
}

// Frame advances the animation by dt and renders into the surface.
func (v *View) Frame(dt time.Duration) error {
	if !v.mounted {
		return ErrNotMounted
	}
	if v.fallback {
		v.clock.Advance(dt)
		v.stats.Frames = v.clock.Frames
		return nil
	}
	start := time.Now()

	if v.texCh != nil {
		select {
		case res, ok := <-v.texCh:
			v.texCh = nil
			if ok {
				v.installTexture(res)
			}
		default:
		}
	}

	v.clock.Advance(dt)
	v.orbit.Update(dt.Seconds())
	v.orbit.Apply(&v.camera)

	if v.dirty {
		prev := v.built
		v.built = v.composer.Build(scene.State{Filter: v.filter, Selected: v.selected})
		v.dirty = false
		if added, removed := scene.Diff(prev, v.built); len(added)+len(removed) > 0 {
			v.log.Debug().Int("added", len(added)).Int("removed", len(removed)).Msg("scene rebuilt")
		}
	}
	v.tree = scene.Animate(v.built, v.clock)
	dl := scene.Flatten(v.tree, v.res)
	v.hits = dl.Hits
	if h := v.ctrl.Hovered(); h != "" && !v.hasHit(h) {
		v.ctrl.Reset()
	}

	v.renderer.Render(v.surface, &gfx.Frame{
		Camera:     v.camera,
		Light:      lightRig,
		Background: dl.Background,
		Items:      dl.Items,
		Lines:      dl.Lines,
	})
	v.drawLabels(dl.Labels)
	if !v.opts.HideHUD {
		v.drawHUD()
	}

	markers, arcs := v.tree.Count(scene.KindMarker), v.tree.Count(scene.KindArc)
	v.stats = Stats{
		Session:      v.session,
		Frames:       v.clock.Frames,
		Markers:      markers,
		Arcs:         arcs,
		TextureReady: v.texReady,
		Render:       v.renderer.Stats(),
	}
	v.opts.Metrics.SetScene(markers, arcs)
	v.opts.Metrics.ObserveFrame(time.Since(start))
	return nil
}

func (v *View) hasHit(name string) bool {
	for _, h := range v.hits {
		if h.Dest == name {
			return true
		}
	}
	return false
}

// facing reports whether a marker is on the camera side of the globe.
func (v *View) facing(h scene.Hit) bool {
	return gfx.Dot(h.Normal, v.camera.Position.Sub(h.Center)) > 0
}

// pick finds the front-facing marker nearest the camera under (x, y).
func (v *View) pick(x, y float64) (string, bool) {
	if v.surface == nil {
		return "", false
	}
	w, h := v.surface.Size()
	best, bestDepth := "", math.Inf(1)
	for _, hit := range v.hits {
		if !v.facing(hit) {
			continue
		}
		sp, ok := gfx.ProjectToScreen(v.camera, w, h, hit.Center)
		if !ok {
			continue
		}
		r := math.Max(minPickRadius, hit.Radius*gfx.PixelsPerUnit(v.camera, h, hit.Center))
		if math.Hypot(sp.X-x, sp.Y-y) > r {
			continue
		}
		if sp.Depth < bestDepth {
			best, bestDepth = hit.Dest, sp.Depth
		}
	}
	return best, best != ""
}

// ScreenPosition returns where a destination's marker was drawn in the last
// frame. ok is false when it has no marker or faces away from the camera.
func (v *View) ScreenPosition(name string) (x, y float64, ok bool) {
	if v.surface == nil {
		return 0, 0, false
	}
	w, h := v.surface.Size()
	for _, hit := range v.hits {
		if hit.Dest != name || !v.facing(hit) {
			continue
		}
		sp, ok := gfx.ProjectToScreen(v.camera, w, h, hit.Center)
		if !ok {
			return 0, 0, false
		}
		return sp.X, sp.Y, true
	}
	return 0, 0, false
}
