// Package hal is the only contact point between the globe and the host:
// a framebuffer to present into, input devices, a cursor and a tick source.
package hal

import (
	"errors"
	"image"
)

// ErrNoDisplay is returned by RunWindow when the build has no window
// backend.
var ErrNoDisplay = errors.New("hal: no display backend (build with CGO_ENABLED=1)")

// Framebuffer receives finished frames. Present copies img, so the caller
// may keep drawing into it.
type Framebuffer interface {
	Width() int
	Height() int
	Present(img *image.RGBA) error
}

// KeyCode is a minimal key identifier. Printable keys arrive as runes.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyTab
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerWheel
	PointerLeave
)

// PointerEvent is a primary-button pointer event in framebuffer pixels.
// Wheel is positive when scrolling away from the user.
type PointerEvent struct {
	Kind  PointerKind
	X, Y  int
	Wheel float64
}

// Pointer provides mouse or touch events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Cursor switches the pointer affordance.
type Cursor interface {
	SetPointer(on bool)
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream. One tick is one millisecond of host
// time.
type Time interface {
	Ticks() <-chan uint64
}

// HAL bundles the host capabilities.
type HAL interface {
	Display() Display
	Input() Input
	Cursor() Cursor
	Time() Time
}
