//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch     chan PointerEvent
	x, y   int
	inside bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64), x: -1, y: -1}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// poll reads the mouse state for a w×h layout.
func (p *hostPointer) poll(w, h int) {
	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < w && y < h
	if !inside {
		if p.inside {
			p.emit(PointerEvent{Kind: PointerLeave, X: x, Y: y})
		}
		p.inside = false
		p.x, p.y = x, y
		return
	}
	if x != p.x || y != p.y || !p.inside {
		p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}
	p.inside = true
	p.x, p.y = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerDown, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerUp, X: x, Y: y})
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		// ebiten reports scrolling up as positive.
		p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, Wheel: dy})
	}
}
