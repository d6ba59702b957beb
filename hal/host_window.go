//go:build cgo

package hal

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window that shows the framebuffer and forwards
// keyboard and mouse input. It blocks until the window closes, step fails
// or ctx is canceled.
func RunWindow(ctx context.Context, cfg WindowConfig, newApp func(HAL) func() error) error {
	cfg.setDefaults()
	h := newHost(cfg.Width, cfg.Height)
	step := newApp(h)

	g := &hostGame{ctx: ctx, h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	ctx     context.Context
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	pointer bool
	step    func() error
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.h.kbd.poll()
	g.h.ptr.poll(g.h.fb.width, g.h.fb.height)
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	if p := g.h.cursor.Pointer(); p != g.pointer {
		g.pointer = p
		if p {
			ebiten.SetCursorShape(ebiten.CursorShapePointer)
		} else {
			ebiten.SetCursorShape(ebiten.CursorShapeDefault)
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(_, _ int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
