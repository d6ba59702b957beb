// Package app drives a globe view from a HAL: it routes input, advances
// time, presents frames and keeps a copy of the last frame for readers on
// other goroutines.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
	"time"

	"travelglobe/geo"
	"travelglobe/globeview"
	"travelglobe/hal"
	"travelglobe/interact"
	"travelglobe/internal/debugsrv"
	"travelglobe/texture"

	"github.com/rs/zerolog"
)

type Config struct {
	View globeview.Options

	// SnapshotPath receives a PNG of the frame every SnapshotEvery frames
	// and once more on Close. Empty disables snapshots.
	SnapshotPath  string
	SnapshotEvery uint64

	// ExitOnPanic makes Step return the crash instead of holding the crash
	// screen.
	ExitOnPanic bool
}

// App is the render loop body. Step runs on the host loop; Snapshot,
// Texture and Stats may be called from any goroutine.
type App struct {
	cfg  Config
	h    hal.HAL
	view *globeview.View
	log  zerolog.Logger

	frames  uint64
	crashed error

	mu    sync.Mutex
	snap  *image.RGBA
	stats globeview.Stats
}

// New creates and mounts the view for h.
func New(ctx context.Context, h hal.HAL, cfg Config) (*App, error) {
	a := &App{cfg: cfg, h: h, log: cfg.View.Logger.With().Str("component", "app").Logger()}
	if cur := h.Cursor(); cur != nil && cfg.View.Cursor == nil {
		cfg.View.Cursor = interact.CursorFunc(func(s interact.CursorShape) {
			cur.SetPointer(s == interact.CursorPointer)
		})
	}
	if cfg.View.Synthesizer == nil {
		cfg.View.Synthesizer = texture.NewSynthesizer()
	}
	if fb := h.Display().Framebuffer(); fb != nil {
		if cfg.View.Width <= 0 {
			cfg.View.Width = fb.Width()
		}
		if cfg.View.Height <= 0 {
			cfg.View.Height = fb.Height()
		}
	}
	v, err := globeview.New(cfg.View)
	if err != nil {
		return nil, err
	}
	if err := v.Mount(ctx); err != nil {
		return nil, err
	}
	a.cfg = cfg
	a.view = v
	return a, nil
}

// View returns the mounted view. It must only be used from the host loop.
func (a *App) View() *globeview.View { return a.view }

// Err reports the panic that stopped the loop, if any.
func (a *App) Err() error { return a.crashed }

// Step handles pending input, renders one frame and presents it.
func (a *App) Step() (err error) {
	if a.crashed != nil {
		if a.cfg.ExitOnPanic {
			return a.crashed
		}
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = a.crash(r)
		}
	}()

	dt := a.drainTicks()
	a.drainKeys()
	a.drainPointer()

	if err := a.view.Frame(dt); err != nil {
		return err
	}
	img := a.view.Image()
	if fb := a.h.Display().Framebuffer(); fb != nil && img != nil {
		if err := fb.Present(img); err != nil {
			return err
		}
	}
	a.frames++
	a.keep(img)

	if a.cfg.SnapshotPath != "" && a.cfg.SnapshotEvery > 0 && a.frames%a.cfg.SnapshotEvery == 0 {
		if err := a.SaveSnapshot(a.cfg.SnapshotPath); err != nil {
			a.log.Warn().Err(err).Msg("snapshot failed")
		}
	}
	return nil
}

func (a *App) drainTicks() time.Duration {
	t := a.h.Time()
	if t == nil {
		return 0
	}
	var n int
	for {
		select {
		case <-t.Ticks():
			n++
		default:
			return time.Duration(n) * time.Millisecond
		}
	}
}

func (a *App) drainKeys() {
	in := a.h.Input()
	if in == nil || in.Keyboard() == nil {
		return
	}
	for {
		select {
		case ev := <-in.Keyboard().Events():
			if ev.Press {
				a.handleKey(ev)
			}
		default:
			return
		}
	}
}

func (a *App) handleKey(ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeyEscape:
		a.view.ClearSelection()
		return
	case hal.KeyTab:
		a.selectNext()
		return
	}
	switch ev.Rune {
	case '1':
		a.view.SetFilter(geo.FilterAll)
	case '2':
		a.view.SetFilter(geo.FilterVisited)
	case '3':
		a.view.SetFilter(geo.FilterPlanned)
	case 'f', 'F':
		a.view.CycleFilter()
	case 'w', 'W':
		a.view.ToggleWireframe()
	case 'r', 'R':
		if o := a.view.Orbit(); o != nil {
			o.AutoRotate = !o.AutoRotate
		}
	}
}

// selectNext selects the visible destination after the current selection
// and turns the globe towards it.
func (a *App) selectNext() {
	names := a.view.Markers()
	if len(names) == 0 {
		return
	}
	next := names[0]
	if cur, ok := a.view.Selection(); ok {
		for i, n := range names {
			if n == cur.Name {
				next = names[(i+1)%len(names)]
				break
			}
		}
	}
	a.view.Select(next)
	a.view.Focus(next)
}

func (a *App) drainPointer() {
	in := a.h.Input()
	if in == nil || in.Pointer() == nil {
		return
	}
	for {
		select {
		case ev := <-in.Pointer().Events():
			a.view.HandlePointer(pointerEvent(ev))
		default:
			return
		}
	}
}

func pointerEvent(ev hal.PointerEvent) interact.PointerEvent {
	out := interact.PointerEvent{X: float64(ev.X), Y: float64(ev.Y), WheelDelta: ev.Wheel}
	switch ev.Kind {
	case hal.PointerDown:
		out.Kind = interact.PointerDown
	case hal.PointerUp:
		out.Kind = interact.PointerUp
	case hal.PointerWheel:
		out.Kind = interact.PointerWheel
	case hal.PointerLeave:
		out.Kind = interact.PointerLeave
	default:
		out.Kind = interact.PointerMove
	}
	return out
}

func (a *App) keep(img *image.RGBA) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats = a.view.Stats()
	if img == nil {
		a.snap = nil
		return
	}
	if a.snap == nil || a.snap.Bounds() != img.Bounds() {
		a.snap = image.NewRGBA(img.Bounds())
	}
	copy(a.snap.Pix, img.Pix)
}

// Snapshot returns a copy of the last presented frame.
func (a *App) Snapshot() (image.Image, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snap == nil {
		return nil, debugsrv.ErrNotReady
	}
	out := image.NewRGBA(a.snap.Bounds())
	copy(out.Pix, a.snap.Pix)
	return out, nil
}

// Texture returns the synthesized planet texture.
func (a *App) Texture() (image.Image, error) {
	if a.cfg.View.Synthesizer == nil {
		return nil, debugsrv.ErrNotReady
	}
	tex := a.cfg.View.Synthesizer.Cached()
	if tex == nil {
		return nil, debugsrv.ErrNotReady
	}
	return tex.Image(), nil
}

// Stats returns the view stats as of the last frame.
func (a *App) Stats() any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// SaveSnapshot writes the last frame to path as PNG.
func (a *App) SaveSnapshot(path string) (err error) {
	img, err := a.Snapshot()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return png.Encode(f, img)
}

// SnapshotPath returns where Close writes the final frame, or "" when it
// writes nothing.
func (a *App) SnapshotPath() string {
	if a.frames == 0 {
		return ""
	}
	return a.cfg.SnapshotPath
}

// Close writes the final snapshot and unmounts the view.
func (a *App) Close() error {
	var err error
	if path := a.SnapshotPath(); path != "" {
		err = a.SaveSnapshot(path)
	}
	a.view.Unmount()
	return err
}
