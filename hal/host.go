package hal

import "sync"

type hostHAL struct {
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	cursor *hostCursor
	t      *hostTime
}

// New returns a host HAL with a width×height framebuffer.
func New(width, height int) HAL {
	return newHost(width, height)
}

func newHost(width, height int) *hostHAL {
	return &hostHAL{
		fb:     newHostFramebuffer(width, height),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		cursor: &hostCursor{},
		t:      newHostTime(),
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Cursor() Cursor   { return h.cursor }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostCursor struct {
	mu      sync.Mutex
	pointer bool
}

func (c *hostCursor) SetPointer(on bool) {
	c.mu.Lock()
	c.pointer = on
	c.mu.Unlock()
}

func (c *hostCursor) Pointer() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pointer
}
